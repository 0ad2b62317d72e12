package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"compass-backend/internal/core/server"
)

// NewAdminEngine is the ops listener: liveness and Prometheus scrape.
// It is meant for the internal network and carries no authentication.
func NewAdminEngine(l *zap.Logger, mods ...any) *gin.Engine {
	r := server.NewRouter(l, nil)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	var reg Registry
	reg.Register(mods...)
	reg.MountAllAdmin(r.Group("/admin/v1"))

	return r
}
