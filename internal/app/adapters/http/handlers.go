package http

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

func (r *Router) statusHandler(c *gin.Context) {
	status := gin.H{
		"uptime_secs": int(time.Since(r.startedAt).Seconds()),
		"goroutines":  runtime.NumGoroutine(),
		"channels":    r.manager.Get().App.Channels,
		"log_level":   r.log.GetLogLevel(),
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		status["cpu_percent"] = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		status["mem_used_percent"] = vm.UsedPercent
	}

	c.JSON(http.StatusOK, status)
}
