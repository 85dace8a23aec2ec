package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"
)

const healthTimeout = 3 * time.Second

// HealthHandler handles health check requests.
type HealthHandler struct {
	Driver string
	Ping   func(ctx context.Context) error
}

// NewHealthHandler creates a new HealthHandler. A nil ping always reports OK.
func NewHealthHandler(driver string, ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{Driver: driver, Ping: ping}
}

// HealthCheckResponse defines the structure for the health check response.
type HealthCheckResponse struct {
	ServerStatus  string `json:"server_status"`
	StorageDriver string `json:"storage_driver"`
	StorageStatus string `json:"storage_status"`
	Timestamp     string `json:"timestamp"`
}

func (h *HealthHandler) check(ctx context.Context) (int, HealthCheckResponse) {
	response := HealthCheckResponse{
		ServerStatus:  "OK",
		StorageDriver: h.Driver,
		StorageStatus: "OK",
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}
	if h.Ping == nil {
		return http.StatusOK, response
	}
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	if err := h.Ping(ctx); err != nil {
		response.StorageStatus = "Error: " + err.Error()
		return http.StatusServiceUnavailable, response
	}
	return http.StatusOK, response
}

// CheckHealthFiber is the health check endpoint handler for Fiber.
// @Summary API Health Check
// @Description Check the health of the API and its storage backend.
// @Tags Health
// @Produce json
// @Success 200 {object} HealthCheckResponse "Successfully checked health"
// @Failure 503 {object} HealthCheckResponse "Storage backend unreachable"
// @Router /health [get]
func (h *HealthHandler) CheckHealthFiber(c *fiber.Ctx) error {
	status, response := h.check(c.UserContext())
	return c.Status(status).JSON(response)
}

// CheckHealthGin is the health check endpoint handler for Gin.
func (h *HealthHandler) CheckHealthGin(c *gin.Context) {
	status, response := h.check(c.Request.Context())
	c.JSON(status, response)
}
