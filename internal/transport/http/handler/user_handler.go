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

type UserHandler struct {
	svc service.UserService
	l   *zap.Logger
}

func NewUserHandler(svc service.UserService, l *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, l: l}
}

func (h *UserHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g.Group("/user"), h.l)
	fail := http.StatusBadRequest

	ez.RegisterAction(e, ez.Action[dto.CreateUserRequest, *dto.UserDto]{
		Method: "POST", Path: "", Binder: ez.BindJSON, Auth: true, FailStatus: fail,
		Handler: func(c *gin.Context, p domain.Principal, in *dto.CreateUserRequest) (*dto.UserDto, error) {
			return h.svc.Create(c.Request.Context(), in, p)
		},
	})
	ez.RegisterAction(e, ez.Action[userIDURI, *dto.UserDto]{
		Method: "DELETE", Path: "/:id", Binder: ez.BindURI, Auth: true, FailStatus: fail,
		Handler: func(c *gin.Context, p domain.Principal, in *userIDURI) (*dto.UserDto, error) {
			return h.svc.Block(c.Request.Context(), in.ID, p)
		},
	})
	ez.RegisterAction(e, ez.Action[dto.UpdateUserRequest, *dto.UserDto]{
		Method: "PUT", Path: "/update/:id", Binder: ez.BindJSON, Auth: true, FailStatus: fail,
		Handler: func(c *gin.Context, p domain.Principal, in *dto.UpdateUserRequest) (*dto.UserDto, error) {
			return h.svc.Update(c.Request.Context(), c.Param("id"), in, p)
		},
	})
	ez.RegisterAction(e, ez.Action[userIDURI, *dto.UserDto]{
		Method: "PUT", Path: "/restore/:id", Binder: ez.BindURI, Auth: true, FailStatus: fail,
		Handler: func(c *gin.Context, p domain.Principal, in *userIDURI) (*dto.UserDto, error) {
			return h.svc.Restore(c.Request.Context(), in.ID, p)
		},
	})
	ez.RegisterAction(e, ez.Action[userIDURI, *dto.UserDto]{
		Method: "GET", Path: "/getById/:id", Binder: ez.BindURI, Auth: true, FailStatus: fail,
		Handler: func(c *gin.Context, _ domain.Principal, in *userIDURI) (*dto.UserDto, error) {
			return h.svc.Get(c.Request.Context(), in.ID)
		},
	})
	ez.RegisterAction(e, ez.Action[struct{}, []dto.UserDto]{
		Method: "GET", Path: "/getAllUsers", Binder: ez.BindNone, Auth: true, FailStatus: fail,
		Handler: func(c *gin.Context, _ domain.Principal, _ *struct{}) ([]dto.UserDto, error) {
			return h.svc.List(c.Request.Context())
		},
	})
	ez.RegisterAction(e, ez.Action[struct{}, []dto.UserDto]{
		Method: "GET", Path: "/getAllParticipants", Binder: ez.BindNone, Auth: true, FailStatus: fail,
		Handler: func(c *gin.Context, _ domain.Principal, _ *struct{}) ([]dto.UserDto, error) {
			return h.svc.ListParticipants(c.Request.Context())
		},
	})
}
