package metrics

import "testing"

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	snap := mc.Snapshot()

	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
}

func TestMemorySnapshot_Since(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	before := mc.Snapshot()

	// Allocate some memory
	_ = make([]byte, 1024*1024) // 1 MB

	after := mc.Snapshot()
	d := after.Since(before)

	if d.HeapAllocNow != after.HeapAlloc {
		t.Errorf("HeapAllocNow = %d, want %d", d.HeapAllocNow, after.HeapAlloc)
	}
	if after.Sys < before.Sys {
		t.Error("Sys should not decrease between snapshots")
	}
}

func TestMemorySnapshot_Since_ShrinkingSys(t *testing.T) {
	t.Parallel()

	earlier := MemorySnapshot{Sys: 100, NumGC: 3, PauseTotalNs: 50}
	later := MemorySnapshot{Sys: 80, NumGC: 5, PauseTotalNs: 90, HeapAlloc: 42}

	d := later.Since(earlier)
	if d.SysGrowth != 0 {
		t.Errorf("SysGrowth = %d, want 0 when Sys shrank", d.SysGrowth)
	}
	if d.GCCycles != 2 || d.GCPauseNs != 40 {
		t.Errorf("GC delta = (%d, %d), want (2, 40)", d.GCCycles, d.GCPauseNs)
	}
}
