package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"compass-backend/internal/domain"
	"compass-backend/internal/dto"
	"compass-backend/internal/service"
	"compass-backend/internal/transport/http/ez"
)

type IncidentHandler struct {
	svc service.IncidentService
	l   *zap.Logger
}

func NewIncidentHandler(svc service.IncidentService, l *zap.Logger) *IncidentHandler {
	return &IncidentHandler{svc: svc, l: l}
}

func (h *IncidentHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g.Group("/incident"), h.l)

	ez.RegisterAction(e, ez.Action[dto.IncidentRequest, *dto.IncidentDto]{
		Method: "POST", Path: "", Binder: ez.BindJSON, Auth: true, Roles: privileged,
		FailStatus: http.StatusBadRequest,
		Handler: func(c *gin.Context, p domain.Principal, in *dto.IncidentRequest) (*dto.IncidentDto, error) {
			return h.svc.Create(c.Request.Context(), in, p)
		},
	})
	ez.RegisterAction(e, ez.Action[dto.IncidentRequest, *dto.IncidentDto]{
		Method: "PUT", Path: "", Binder: ez.BindJSON, Auth: true, Roles: privileged,
		FailStatus: http.StatusBadRequest,
		Handler: func(c *gin.Context, p domain.Principal, in *dto.IncidentRequest) (*dto.IncidentDto, error) {
			return h.svc.Update(c.Request.Context(), in, p)
		},
	})
	ez.RegisterAction(e, ez.Action[idURI, Empty]{
		Method: "DELETE", Path: "/:id", Binder: ez.BindURI, Auth: true, Roles: privileged,
		FailStatus: http.StatusBadRequest,
		Handler: func(c *gin.Context, p domain.Principal, in *idURI) (Empty, error) {
			return Empty{}, h.svc.Delete(c.Request.Context(), in.ID, p)
		},
	})
	ez.RegisterAction(e, ez.Action[struct{}, []dto.IncidentDto]{
		Method: "GET", Path: "/getAll", Binder: ez.BindNone, Auth: true, Roles: privileged,
		FailStatus: http.StatusBadRequest,
		Handler: func(c *gin.Context, p domain.Principal, _ *struct{}) ([]dto.IncidentDto, error) {
			return h.svc.List(c.Request.Context(), p)
		},
	})
}
