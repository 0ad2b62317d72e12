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

type CategoryHandler struct {
	svc service.CategoryService
	l   *zap.Logger
}

func NewCategoryHandler(svc service.CategoryService, l *zap.Logger) *CategoryHandler {
	return &CategoryHandler{svc: svc, l: l}
}

func (h *CategoryHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g.Group("/category"), h.l)

	ez.RegisterAction(e, ez.Action[dto.CategoryRequest, *dto.CategoryDto]{
		Method: "POST", Path: "", Binder: ez.BindJSON, Auth: true, Roles: privileged,
		FailStatus: http.StatusBadRequest,
		Handler: func(c *gin.Context, p domain.Principal, in *dto.CategoryRequest) (*dto.CategoryDto, error) {
			return h.svc.Create(c.Request.Context(), in, p)
		},
	})
	ez.RegisterAction(e, ez.Action[struct{}, []dto.CategoryDto]{
		Method: "GET", Path: "", Binder: ez.BindNone, Auth: true,
		Handler: func(c *gin.Context, _ domain.Principal, _ *struct{}) ([]dto.CategoryDto, error) {
			return h.svc.List(c.Request.Context())
		},
	})
	ez.RegisterAction(e, ez.Action[userURI, []dto.CategoryDto]{
		Method: "GET", Path: "/getCategoryListByUserId/:userId", Binder: ez.BindURI, Auth: true,
		FailStatus: http.StatusBadRequest,
		Handler: func(c *gin.Context, _ domain.Principal, in *userURI) ([]dto.CategoryDto, error) {
			return h.svc.ListForUser(c.Request.Context(), in.UserID)
		},
	})
	ez.RegisterAction(e, ez.Action[dto.CategoryRequest, *dto.CategoryDto]{
		Method: "POST", Path: "/linkUsersToExistingCategory", Binder: ez.BindJSON, Auth: true, Roles: privileged,
		FailStatus: http.StatusBadRequest,
		Handler: func(c *gin.Context, p domain.Principal, in *dto.CategoryRequest) (*dto.CategoryDto, error) {
			return h.svc.LinkOwners(c.Request.Context(), in, p)
		},
	})
}
