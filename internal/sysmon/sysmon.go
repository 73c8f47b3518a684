// Package sysmon provides system-wide CPU and memory usage sampling.
package sysmon

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/christianazinn/triple/internal/logging"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// AvailableMemory returns the bytes of memory currently available to the
// process, or 0 if the reading fails. The dense search strategy checks its
// allocation against this before reserving the slot array.
func AvailableMemory() uint64 {
	vmem, err := mem.VirtualMemory()
	if err != nil || vmem == nil {
		return 0
	}
	return vmem.Available
}

// Watch samples resource usage every interval and logs it until the
// context is canceled. It is meant to run in its own goroutine alongside a
// long search.
func Watch(ctx context.Context, interval time.Duration, logger logging.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s := Sample()
			logger.Debug("system usage",
				logging.Float64("cpu_percent", s.CPUPercent),
				logging.Float64("mem_percent", s.MemPercent))
		}
	}
}
