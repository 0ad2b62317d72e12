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

type RatingHandler struct {
	svc service.RatingService
	l   *zap.Logger
}

func NewRatingHandler(svc service.RatingService, l *zap.Logger) *RatingHandler {
	return &RatingHandler{svc: svc, l: l}
}

func (h *RatingHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g.Group("/rating"), h.l)

	ez.RegisterAction(e, ez.Action[[]dto.CreateRatingRequest, []dto.RatingDto]{
		Method: "POST", Path: "/createRatingsByDaySheetId/:daySheetId", Binder: ez.BindJSON, Auth: true,
		FailStatus: http.StatusBadRequest,
		Handler: func(c *gin.Context, p domain.Principal, in *[]dto.CreateRatingRequest) ([]dto.RatingDto, error) {
			id, err := ez.ParamUint(c, "daySheetId")
			if err != nil {
				return nil, err
			}
			return h.svc.CreateRatings(c.Request.Context(), id, *in, p)
		},
	})
}
