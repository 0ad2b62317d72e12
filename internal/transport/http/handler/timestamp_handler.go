package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"compass-backend/internal/domain"
	"compass-backend/internal/dto"
	"compass-backend/internal/service"
	"compass-backend/internal/transport/http/ez"
)

type TimestampHandler struct {
	svc service.TimestampService
	l   *zap.Logger
}

func NewTimestampHandler(svc service.TimestampService, l *zap.Logger) *TimestampHandler {
	return &TimestampHandler{svc: svc, l: l}
}

func (h *TimestampHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g.Group("/timestamp"), h.l)

	ez.RegisterAction(e, ez.Action[dto.TimestampRequest, *dto.TimestampDto]{
		Method: "POST", Path: "", Binder: ez.BindJSON, Auth: true,
		Handler: func(c *gin.Context, p domain.Principal, in *dto.TimestampRequest) (*dto.TimestampDto, error) {
			return h.svc.Create(c.Request.Context(), in, p)
		},
	})
	ez.RegisterAction(e, ez.Action[dto.TimestampRequest, *dto.TimestampDto]{
		Method: "PUT", Path: "", Binder: ez.BindJSON, Auth: true,
		Handler: func(c *gin.Context, p domain.Principal, in *dto.TimestampRequest) (*dto.TimestampDto, error) {
			if in.ID == 0 {
				return nil, ez.BadRequest("id is required")
			}
			return h.svc.Update(c.Request.Context(), in, p)
		},
	})
	ez.RegisterAction(e, ez.Action[idURI, Empty]{
		Method: "DELETE", Path: "/:id", Binder: ez.BindURI, Auth: true,
		Handler: func(c *gin.Context, p domain.Principal, in *idURI) (Empty, error) {
			return Empty{}, h.svc.Delete(c.Request.Context(), in.ID, p)
		},
	})
	ez.RegisterAction(e, ez.Action[idURI, *dto.TimestampDto]{
		Method: "GET", Path: "/getById/:id", Binder: ez.BindURI, Auth: true,
		Handler: func(c *gin.Context, p domain.Principal, in *idURI) (*dto.TimestampDto, error) {
			return h.svc.GetByID(c.Request.Context(), in.ID, p)
		},
	})
	ez.RegisterAction(e, ez.Action[idURI, []dto.TimestampDto]{
		Method: "GET", Path: "/allbydaysheetid/:id", Binder: ez.BindURI, Auth: true,
		Handler: func(c *gin.Context, p domain.Principal, in *idURI) ([]dto.TimestampDto, error) {
			return h.svc.ListByDaySheet(c.Request.Context(), in.ID, p)
		},
	})
}
