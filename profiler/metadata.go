package profiler

// RuntimeKey identifies one op invocation on a chip.
type RuntimeKey struct {
	ChipID    int
	RuntimeID uint32
}

// OptionalMetadata carries host-side knowledge about the ops of a dump.
type OptionalMetadata struct {
	OpNames map[RuntimeKey]string
}

// OpName returns the op name of a run, or "" when unknown. Safe on nil.
func (m *OptionalMetadata) OpName(chipID int, runtimeID uint32) string {
	if m == nil {
		return ""
	}
	return m.OpNames[RuntimeKey{ChipID: chipID, RuntimeID: runtimeID}]
}
