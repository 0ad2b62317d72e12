package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"compass-backend/internal/service"
	"compass-backend/internal/transport/http/ez"
)

// SystemHandler serves unauthenticated liveness and status probes.
type SystemHandler struct {
	svc service.SystemService
	l   *zap.Logger
}

func NewSystemHandler(svc service.SystemService, l *zap.Logger) *SystemHandler {
	return &SystemHandler{svc: svc, l: l}
}

// Banner is the plain-text body of GET /.
const Banner = "Backend of Compass application!"

func (h *SystemHandler) MountPublic(g *gin.RouterGroup) {
	g.GET("/", func(c *gin.Context) { c.String(http.StatusOK, Banner) })

	e := ez.New(g, h.l)
	e.GET("/health", func(c *gin.Context) (any, error) {
		return gin.H{"ok": true}, nil
	})
	e.GET("/system/status", func(c *gin.Context) (any, error) {
		return h.svc.Status(c.Request.Context()), nil
	})
}

// MountAdmin exposes the same status on the ops listener.
func (h *SystemHandler) MountAdmin(g *gin.RouterGroup) {
	ez.New(g, h.l).GET("/status", func(c *gin.Context) (any, error) {
		return h.svc.Status(c.Request.Context()), nil
	})
}
