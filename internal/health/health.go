package health

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// Pinger is satisfied by the spreadsheet store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CacheProbe is satisfied by *cache.Cache. A nil probe means caching is off.
type CacheProbe interface {
	IsHealthy(ctx context.Context) bool
}

type HealthChecker struct {
	sheets Pinger
	cache  CacheProbe
}

type HealthStatus struct {
	Status      string           `json:"status"`
	Spreadsheet ComponentHealth  `json:"spreadsheet"`
	Cache       *ComponentHealth `json:"cache,omitempty"`
	System      *SystemHealth    `json:"system,omitempty"`
}

type ComponentHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"responseTimeMs"`
	Error        string `json:"error,omitempty"`
}

type SystemHealth struct {
	CPUPercent    float64 `json:"cpuPercent"`
	MemoryPercent float64 `json:"memoryPercent"`
	MemoryUsed    string  `json:"memoryUsed"`
	MemoryTotal   string  `json:"memoryTotal"`
	DiskPercent   float64 `json:"diskPercent"`
}

func NewHealthChecker(sheets Pinger, cache CacheProbe) *HealthChecker {
	return &HealthChecker{sheets: sheets, cache: cache}
}

// CheckBasic reports whether the spreadsheet can be read. The cache is
// optional and never makes the service unhealthy.
func (h *HealthChecker) CheckBasic(ctx context.Context) HealthStatus {
	sheetHealth := h.checkSpreadsheet(ctx)

	status := "healthy"
	if sheetHealth.Status != "healthy" {
		status = "unhealthy"
	}

	return HealthStatus{
		Status:      status,
		Spreadsheet: sheetHealth,
	}
}

// CheckDetailed adds the cache and host resource usage.
func (h *HealthChecker) CheckDetailed(ctx context.Context) HealthStatus {
	status := h.CheckBasic(ctx)
	if h.cache != nil {
		c := h.checkCache(ctx)
		status.Cache = &c
		if c.Status != "healthy" && status.Status == "healthy" {
			status.Status = "degraded"
		}
	}
	status.System = systemHealth()
	return status
}

func (h *HealthChecker) checkSpreadsheet(ctx context.Context) ComponentHealth {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	start := time.Now()
	err := h.sheets.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return ComponentHealth{
			Status:       "unhealthy",
			ResponseTime: responseTime,
			Error:        err.Error(),
		}
	}

	return ComponentHealth{
		Status:       "healthy",
		ResponseTime: responseTime,
	}
}

func (h *HealthChecker) checkCache(ctx context.Context) ComponentHealth {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	ok := h.cache.IsHealthy(ctx)
	c := ComponentHealth{Status: "healthy", ResponseTime: time.Since(start).Milliseconds()}
	if !ok {
		c.Status = "unhealthy"
	}
	return c
}

func systemHealth() *SystemHealth {
	s := &SystemHealth{}

	// Interval 0 compares against the previous call instead of blocking.
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		s.CPUPercent = percents[0]
	}
	if memStats, err := mem.VirtualMemory(); err == nil {
		s.MemoryPercent = memStats.UsedPercent
		s.MemoryUsed = formatBytes(memStats.Used)
		s.MemoryTotal = formatBytes(memStats.Total)
	}
	if diskStats, err := disk.Usage("/"); err == nil {
		s.DiskPercent = diskStats.UsedPercent
	}
	return s
}

func formatBytes(bytes uint64) string {
	gb := float64(bytes) / (1024 * 1024 * 1024)
	if gb < 1 {
		mb := float64(bytes) / (1024 * 1024)
		return fmt.Sprintf("%.1f MB", mb)
	}
	return fmt.Sprintf("%.1f GB", gb)
}
