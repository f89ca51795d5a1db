package metrics

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// SystemSample holds a point-in-time reading of host and process resources.
type SystemSample struct {
	CPUPercent float64 `json:"cpuPercent"` // host, 0.0 .. 100.0
	MemPercent float64 `json:"memPercent"` // host, 0.0 .. 100.0
	HeapAlloc  uint64  `json:"heapAlloc"`  // bytes in use by the process heap
	Sys        uint64  `json:"sys"`        // total bytes obtained from the OS
	NumGC      uint32  `json:"numGC"`
	Goroutines int     `json:"goroutines"`
}

// SystemSampler reads host statistics through gopsutil and process
// statistics from the Go runtime.
type SystemSampler struct{}

// NewSystemSampler creates a new sampler.
func NewSystemSampler() *SystemSampler {
	return &SystemSampler{}
}

// Sample collects a single snapshot. CPU uses interval=0, the delta since the
// previous call. Host fields are left at zero when gopsutil fails.
func (s *SystemSampler) Sample() SystemSample {
	var out SystemSample
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		out.CPUPercent = pcts[0]
	}
	if vmem, err := mem.VirtualMemory(); err == nil && vmem != nil {
		out.MemPercent = vmem.UsedPercent
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	out.HeapAlloc = m.HeapAlloc
	out.Sys = m.Sys
	out.NumGC = m.NumGC
	out.Goroutines = runtime.NumGoroutine()
	return out
}
