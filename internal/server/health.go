package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// healthHandler reports the store status together with host load.
func (s *Server) healthHandler(c echo.Context) error {
	dbHealth := s.db.Health()

	system := map[string]interface{}{
		"uptime":     time.Since(s.startTime).Round(time.Second).String(),
		"start_time": s.startTime.Format(time.RFC3339),
	}
	if v, err := mem.VirtualMemory(); err == nil {
		system["ram_used_percent"] = v.UsedPercent
	}
	// Zero interval compares against the previous call and never blocks.
	if cpuPercent, err := cpu.Percent(0, false); err == nil && len(cpuPercent) > 0 {
		system["cpu_used_percent"] = cpuPercent[0]
	}
	if hInfo, err := host.Info(); err == nil && hInfo != nil {
		system["os"] = hInfo.OS
		system["platform"] = hInfo.Platform
		system["hostname"] = hInfo.Hostname
	}

	status := http.StatusOK
	if dbHealth["status"] != "up" {
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, map[string]interface{}{
		"status":             dbHealth["status"],
		"database":           dbHealth,
		"system":             system,
		"open_dashboards":    s.hub.Connected(),
		"cached_chart_views": s.views.Len(),
	})
}
