package desktop

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/Gaurav-Gosain/journalos/internal/config"
)

// SysInfoMsg is one CPU and memory sample, both in percent.
type SysInfoMsg struct {
	CPU float64
	Mem float64
	Err error
}

// sampleSysInfo reads CPU usage since the previous call and current memory
// use.
func sampleSysInfo() tea.Msg {
	percents, err := cpu.Percent(0, false)
	if err != nil {
		return SysInfoMsg{Err: fmt.Errorf("cpu: %w", err)}
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		return SysInfoMsg{Err: fmt.Errorf("memory: %w", err)}
	}
	var usage float64
	if len(percents) > 0 {
		usage = percents[0]
	}
	return SysInfoMsg{CPU: usage, Mem: vm.UsedPercent}
}

func sysInfoCmd() tea.Cmd {
	return tea.Tick(config.SysInfoInterval, func(time.Time) tea.Msg {
		return sampleSysInfo()
	})
}

// sysInfoText is the fixed-width taskbar readout.
func (d *Desktop) sysInfoText() string {
	if !d.SysInfoOK {
		return ""
	}
	return fmt.Sprintf("CPU %3.0f%%  RAM %3.0f%%", d.CPU, d.Mem)
}
