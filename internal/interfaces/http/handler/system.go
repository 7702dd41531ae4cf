package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/parcelcart/backend/internal/interfaces/http/dto"
)

// ServiceInfo is the static part of the /system/info payload.
type ServiceInfo struct {
	Name      string
	Version   string
	ProductID string
	Currency  string
	TierCount int
}

// SystemHandler reports process and pricing configuration details.
type SystemHandler struct {
	BaseHandler
	info    ServiceInfo
	started time.Time
	now     func() time.Time
}

// NewSystemHandler returns a handler that measures uptime from now.
func NewSystemHandler(info ServiceInfo) *SystemHandler {
	if info.Name == "" {
		info.Name = "parcelcart"
	}
	return &SystemHandler{info: info, started: time.Now(), now: time.Now}
}

// SystemInfoResponse is returned by GET /system/info.
type SystemInfoResponse struct {
	Name          string `json:"name" example:"parcelcart"`
	Version       string `json:"version" example:"1.0.0"`
	GoVersion     string `json:"go_version" example:"go1.25.5"`
	StartedAt     string `json:"started_at" example:"2026-01-23T12:00:00Z"`
	UptimeSeconds int64  `json:"uptime_seconds" example:"5445"`
	Parcel        struct {
		ProductID string `json:"product_id" example:"2898"`
		Currency  string `json:"currency" example:"EUR"`
		Tiers     int    `json:"tiers" example:"4"`
	} `json:"parcel"`
}

// GetSystemInfo godoc
// @ID           getSystemSystemInfo
// @Summary      Service information
// @Description  Version, uptime and the active parcel pricing setup
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[SystemInfoResponse]
// @Router       /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	var resp SystemInfoResponse
	resp.Name = h.info.Name
	resp.Version = h.info.Version
	resp.GoVersion = runtime.Version()
	resp.StartedAt = h.started.UTC().Format(time.RFC3339)
	resp.UptimeSeconds = int64(h.now().Sub(h.started) / time.Second)
	resp.Parcel.ProductID = h.info.ProductID
	resp.Parcel.Currency = h.info.Currency
	resp.Parcel.Tiers = h.info.TierCount

	c.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// PingResponse is returned by GET /system/ping.
type PingResponse struct {
	Message    string `json:"message" example:"pong"`
	ServerTime string `json:"server_time" example:"2026-01-23T12:00:00Z"`
}

// Ping answers without touching any dependency.
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(PingResponse{
		Message:    "pong",
		ServerTime: h.now().UTC().Format(time.RFC3339),
	}))
}
