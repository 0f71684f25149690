package renderer

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// HostInfo describes the machine a render runs on
type HostInfo struct {
	CPUModel      string  `json:"cpuModel"`
	MHz           float64 `json:"mhz"`
	PhysicalCores int     `json:"physicalCores"`
	LogicalCPUs   int     `json:"logicalCpus"`
	TotalMemory   uint64  `json:"totalMemory"`
	FreeMemory    uint64  `json:"freeMemory"`
}

// DescribeHost queries the CPU and memory of the current machine. Fields that
// cannot be determined keep their zero value; the error reports the first failure.
func DescribeHost() (HostInfo, error) {
	info := HostInfo{LogicalCPUs: runtime.NumCPU()}
	var firstErr error

	cpus, err := cpu.Info()
	if err != nil {
		firstErr = fmt.Errorf("cpu info: %v", err)
	} else if len(cpus) > 0 {
		info.CPUModel = cpus[0].ModelName
		info.MHz = cpus[0].Mhz
		for _, c := range cpus {
			info.PhysicalCores += int(c.Cores)
		}
	}

	if logical, err := cpu.Counts(true); err == nil && logical > 0 {
		info.LogicalCPUs = logical
	} else if err != nil && firstErr == nil {
		firstErr = fmt.Errorf("cpu counts: %v", err)
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		if firstErr == nil {
			firstErr = fmt.Errorf("memory info: %v", err)
		}
	} else {
		info.TotalMemory = vm.Total
		info.FreeMemory = vm.Available
	}

	return info, firstErr
}

// String formats the host for log banners
func (h HostInfo) String() string {
	model := h.CPUModel
	if model == "" {
		model = "unknown CPU"
	}
	return fmt.Sprintf("%s (%d logical CPUs, %.0f MHz), %.1f GiB RAM",
		model, h.LogicalCPUs, h.MHz, float64(h.TotalMemory)/(1<<30))
}

// DefaultWorkerCount returns the number of logical CPUs
func DefaultWorkerCount() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}
