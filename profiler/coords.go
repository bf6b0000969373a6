package profiler

import (
	"github.com/sirupsen/logrus"

	"github.com/devprof/devprof/profiler/device"
	"github.com/devprof/devprof/profiler/noctrace"
)

// physicalCoord maps a core coordinate as reported by the device to its
// physical grid location. Coordinates below the virtual worker origin are
// already physical; failed translations keep the input.
func (p *DeviceProfiler) physicalCoord(chip int, c device.CoreCoord) device.CoreCoord {
	hal := p.platform.HAL
	start := hal.VirtualWorkerStart()
	translated := c.X >= start.X-1 || c.Y >= start.Y-1
	if !hal.CoordinateVirtualizationEnabled() || !translated {
		return c
	}
	phys, err := p.platform.Cluster.SocDescriptor(chip).TranslateCoord(c, device.Translated, device.Physical)
	if err != nil {
		logrus.Errorf("Failed to translate virtual coordinate %d,%d to physical: %v", c.X, c.Y, err)
		return c
	}
	return phys
}

func (p *DeviceProfiler) coordMapper(chip int) noctrace.CoordMapper {
	return func(x, y int) (int, int) {
		c := p.physicalCoord(chip, device.CoreCoord{X: x, Y: y})
		return c.X, c.Y
	}
}
