package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"compass-backend/internal/core/auth"
	"compass-backend/internal/core/config"
	"compass-backend/internal/core/server"
	"compass-backend/internal/domain"
	"compass-backend/internal/service"
	"compass-backend/internal/transport/http/handler"
	mdw "compass-backend/internal/transport/http/middleware"
)

// Handlers builds one module per resource.
func Handlers(svc *service.Service, l *zap.Logger) []any {
	return []any{
		handler.NewSystemHandler(svc.System, l),
		handler.NewDaySheetHandler(svc.DaySheet, svc.Export, l),
		handler.NewTimestampHandler(svc.Timestamp, l),
		handler.NewRatingHandler(svc.Rating, l),
		handler.NewCategoryHandler(svc.Category, l),
		handler.NewIncidentHandler(svc.Incident, l),
		handler.NewUserHandler(svc.User, l),
	}
}

func NewAPIEngine(l *zap.Logger, cfg config.HTTP, jwter *auth.JWTer, users domain.UserRepository, mods ...any) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		server.CORS(cfg.CORSOrigins),
		mdw.RateLimit(rate.Limit(orFloat(cfg.RateLimitRPS, 200)), orInt(cfg.RateLimitBurst, 400)),
		mdw.ConcurrencyLimit(orInt64(cfg.MaxInFlight, 300)),
		mdw.MaxBodyBytes(orInt64(cfg.MaxBodyBytes, 16<<20)),
		mdw.Timeout(cfg.RequestTimeout()),
		mdw.Recovery(l),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	var reg Registry
	reg.Register(mods...)

	reg.MountAllPublic(&r.RouterGroup)

	authed := r.Group("")
	authed.Use(mdw.AuthJWT(jwter), mdw.ResolveRole(users, l))
	reg.MountAllAPI(authed)

	return r
}

func orFloat(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}

func orInt(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func orInt64(v, def int64) int64 {
	if v > 0 {
		return v
	}
	return def
}
