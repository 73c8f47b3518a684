// Package metrics reads Go runtime statistics for post-run reporting.
package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	HeapSys      uint64 // bytes obtained from OS for heap
	Sys          uint64 // total bytes obtained from OS
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
	HeapObjects  uint64 // number of allocated heap objects
}

// MemoryCollector reads runtime memory statistics. A search process takes
// one snapshot before the pipeline and one after to report the run's
// allocation footprint.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
	}
}

// Delta summarizes what changed between two snapshots of the same process.
type Delta struct {
	SysGrowth    uint64 // OS memory growth, zero if Sys shrank
	GCCycles     uint32 // completed GC cycles in the interval
	GCPauseNs    uint64 // GC pause time accumulated in the interval
	HeapAllocNow uint64 // live heap at the second snapshot
}

// Since computes the delta from an earlier snapshot to this one.
func (s MemorySnapshot) Since(earlier MemorySnapshot) Delta {
	d := Delta{
		GCCycles:     s.NumGC - earlier.NumGC,
		GCPauseNs:    s.PauseTotalNs - earlier.PauseTotalNs,
		HeapAllocNow: s.HeapAlloc,
	}
	if s.Sys > earlier.Sys {
		d.SysGrowth = s.Sys - earlier.Sys
	}
	return d
}
