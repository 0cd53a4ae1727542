package adminapi

import (
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"

	"github.com/opsforge/fieldops/internal/webserver"
)

func registerSystemRoutes() {
	webserver.ApiGET("/system/info", systemInfo)
}

// systemInfo backs the host-status widget on the admin dashboard.
func systemInfo(c echo.Context) error {
	info := map[string]interface{}{
		"go_version": runtime.Version(),
		"goroutines": runtime.NumGoroutine(),
		"time":       time.Now().Format(time.RFC3339),
	}

	if hi, err := host.Info(); err == nil {
		info["hostname"] = hi.Hostname
		info["os"] = hi.Platform
		info["uptime"] = hi.Uptime
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info["mem_total"] = vm.Total
		info["mem_used_percent"] = vm.UsedPercent
	}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		info["cpu_percent"] = percents[0]
	}

	return ok(c, info)
}
