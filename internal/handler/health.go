package handler

import (
	"context"
	"runtime"
	"time"

	"course-converter/internal/domain"
	"course-converter/internal/dto"
	"course-converter/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	appVersion       = "1.0.0"
	cachePingTimeout = 2 * time.Second
)

// HealthHandler reports liveness and runtime details
type HealthHandler struct {
	cache     domain.Cache
	env       string
	startedAt time.Time
	now       func() time.Time
}

// NewHealthHandler creates a HealthHandler. cache may be nil when no cache
// is configured.
func NewHealthHandler(cache domain.Cache, env string) *HealthHandler {
	return &HealthHandler{cache: cache, env: env, startedAt: time.Now(), now: time.Now}
}

func (h *HealthHandler) basic() dto.HealthResponse {
	now := h.now()
	return dto.HealthResponse{
		Status:    "OK",
		Timestamp: now.UTC().Format("2006-01-02T15:04:05.000Z"),
		Uptime:    now.Sub(h.startedAt).Seconds(),
		Version:   appVersion,
	}
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(h.basic())
}

// Detailed godoc
// @Summary Detailed health check
// @Description Adds runtime, memory and cache details
// @Tags health
// @Produce json
// @Success 200 {object} dto.DetailedHealthResponse
// @Router /health/detailed [get]
func (h *HealthHandler) Detailed(c *fiber.Ctx) error {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	env := h.env
	if env == "" {
		env = "development"
	}

	logger.Get().Info("Health check requested")
	return c.JSON(dto.DetailedHealthResponse{
		HealthResponse: h.basic(),
		Environment:    env,
		GoVersion:      runtime.Version(),
		Platform:       runtime.GOOS,
		Arch:           runtime.GOARCH,
		Goroutines:     runtime.NumGoroutine(),
		Memory: dto.MemoryStats{
			Alloc:      mem.Alloc,
			TotalAlloc: mem.TotalAlloc,
			Sys:        mem.Sys,
			NumGC:      mem.NumGC,
		},
		Cache: h.cacheStatus(c.UserContext()),
	})
}

func (h *HealthHandler) cacheStatus(ctx context.Context) string {
	if h.cache == nil {
		return "disabled"
	}
	ctx, cancel := context.WithTimeout(ctx, cachePingTimeout)
	defer cancel()
	if err := h.cache.Ping(ctx); err != nil {
		logger.Get().Warn("Cache ping failed", zap.Error(err))
		return "unavailable"
	}
	return "ok"
}

// Ping godoc
// @Summary Ping
// @Tags health
// @Produce json
// @Success 200 {object} dto.PingResponse
// @Router /health/ping [get]
func (h *HealthHandler) Ping(c *fiber.Ctx) error {
	return c.JSON(dto.PingResponse{Message: "pong"})
}
