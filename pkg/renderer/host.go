package renderer

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// DefaultWorkerCount returns the number of logical CPUs on the host
func DefaultWorkerCount() int {
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// HostSummary describes the CPU and available memory for the start-up log
func HostSummary() string {
	model := "unknown CPU"
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		if name := strings.TrimSpace(infos[0].ModelName); name != "" {
			model = name
		}
	}

	summary := fmt.Sprintf("%s, %d logical cores", model, DefaultWorkerCount())
	if vm, err := mem.VirtualMemory(); err == nil {
		summary += fmt.Sprintf(", %.1f GiB available", float64(vm.Available)/(1<<30))
	}
	return summary
}
