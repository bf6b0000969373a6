package tracing

import (
	"slices"
	"sync"

	"github.com/sirupsen/logrus"
)

// sortWorkers is the fan-out of SortDeviceEvents. Must be a power of two.
const sortWorkers = 8

// SortDeviceEvents sorts events by Compare. Inputs of at least sortWorkers
// events are split into sortWorkers chunks sorted concurrently, then merged
// pairwise in three concurrent passes (4, 2, then 1 merges).
func SortDeviceEvents(events []*DeviceEvent) {
	if len(events) < sortWorkers {
		slices.SortFunc(events, Compare)
		return
	}

	chunk := len(events) / sortWorkers
	bound := func(i int) int {
		if i >= sortWorkers {
			return len(events)
		}
		return i * chunk
	}

	var wg sync.WaitGroup
	for i := 0; i < sortWorkers; i++ {
		lo, hi := bound(i), bound(i+1)
		wg.Add(1)
		go func() {
			defer wg.Done()
			slices.SortFunc(events[lo:hi], Compare)
		}()
	}
	wg.Wait()

	for width := 1; width < sortWorkers; width *= 2 {
		for i := 0; i < sortWorkers; i += 2 * width {
			lo, mid, hi := bound(i), bound(i+width), bound(i+2*width)
			wg.Add(1)
			go func() {
				defer wg.Done()
				mergeRuns(events[lo:hi], mid-lo)
			}()
		}
		wg.Wait()
	}

	if !slices.IsSortedFunc(events, Compare) {
		logrus.Panicf("device events not sorted after merge of %d events", len(events))
	}
}

// mergeRuns merges the sorted runs s[:mid] and s[mid:] in place. Ties keep
// the left run first.
func mergeRuns(s []*DeviceEvent, mid int) {
	if mid <= 0 || mid >= len(s) || Compare(s[mid-1], s[mid]) <= 0 {
		return
	}
	left := slices.Clone(s[:mid])
	i, j, k := 0, mid, 0
	for i < len(left) && j < len(s) {
		if Compare(s[j], left[i]) < 0 {
			s[k] = s[j]
			j++
		} else {
			s[k] = left[i]
			i++
		}
		k++
	}
	for i < len(left) {
		s[k] = left[i]
		i++
		k++
	}
}
