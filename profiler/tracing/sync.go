package tracing

// SyncInfo relates device cycles to host time: at host time CPUTime (ns) the
// device counter read DeviceTime cycles, ticking at Frequency GHz.
type SyncInfo struct {
	CPUTime    float64
	DeviceTime float64
	Frequency  float64
}

// NewerThan reports whether s should replace old: either old was never
// calibrated and s is, or both the host time and the device time in seconds
// moved forward.
func (s SyncInfo) NewerThan(old SyncInfo) bool {
	if old.Frequency == 0 && s.Frequency != 0 {
		return true
	}
	return old.CPUTime < s.CPUTime && old.DeviceTime/old.Frequency < s.DeviceTime/s.Frequency
}

// HostNanos converts a device timestamp to host nanoseconds.
func (s SyncInfo) HostNanos(deviceTS uint64) float64 {
	if s.Frequency == 0 {
		return float64(deviceTS)
	}
	return s.CPUTime + (float64(deviceTS)-s.DeviceTime)/s.Frequency
}
