package agent

import (
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

// Status 代理运行状态
type Status struct {
	PID        int32   `json:"pid"`
	MemoryMB   float64 `json:"memory_mb"`
	CPUPercent float64 `json:"cpu_percent"`
	Uptime     string  `json:"uptime"`
	Actions    int     `json:"actions"`
	Elements   int     `json:"elements"`
}

// Status 收集代理进程的运行状态
func (a *Agent) Status() (*Status, error) {
	pid := int32(os.Getpid())
	proc, err := process.NewProcess(pid)
	if err != nil {
		return nil, fmt.Errorf("获取进程信息失败: %w", err)
	}

	status := &Status{
		PID:      pid,
		Uptime:   time.Since(a.startedAt).Round(time.Second).String(),
		Actions:  a.actionCount,
		Elements: a.store.Len(),
	}

	if mem, err := proc.MemoryInfo(); err == nil && mem != nil {
		status.MemoryMB = float64(mem.RSS) / 1024 / 1024
	}
	if cpu, err := proc.CPUPercent(); err == nil {
		status.CPUPercent = cpu
	}

	return status, nil
}
