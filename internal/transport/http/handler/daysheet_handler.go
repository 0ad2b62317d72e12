package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"compass-backend/internal/domain"
	"compass-backend/internal/dto"
	"compass-backend/internal/service"
	"compass-backend/internal/transport/http/ez"
	"compass-backend/internal/transport/http/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type DaySheetHandler struct {
	svc    service.DaySheetService
	export service.ExportService
	l      *zap.Logger
}

func NewDaySheetHandler(svc service.DaySheetService, export service.ExportService, l *zap.Logger) *DaySheetHandler {
	return &DaySheetHandler{svc: svc, export: export, l: l}
}

func (h *DaySheetHandler) Priority() int { return 10 }

func (h *DaySheetHandler) MountAPI(g *gin.RouterGroup) {
	grp := g.Group("/daysheet")
	e := ez.New(grp, h.l)

	ez.RegisterAction(e, ez.Action[dto.CreateDaySheetRequest, *dto.DaySheetDto]{
		Method: "POST", Path: "", Binder: ez.BindJSON, Auth: true,
		Handler: func(c *gin.Context, p domain.Principal, in *dto.CreateDaySheetRequest) (*dto.DaySheetDto, error) {
			if strings.TrimSpace(in.Date) == "" {
				return nil, ez.Forbidden("date is required")
			}
			return h.svc.Create(c.Request.Context(), in, p)
		},
	})
	ez.RegisterAction(e, ez.Action[idURI, *dto.DaySheetDto]{
		Method: "GET", Path: "/getById/:id", Binder: ez.BindURI, Auth: true,
		Handler: func(c *gin.Context, p domain.Principal, in *idURI) (*dto.DaySheetDto, error) {
			return h.svc.GetByID(c.Request.Context(), in.ID, p)
		},
	})
	ez.RegisterAction(e, ez.Action[dateURI, *dto.DaySheetDto]{
		Method: "GET", Path: "/getByDate/:date", Binder: ez.BindURI, Auth: true,
		Handler: func(c *gin.Context, p domain.Principal, in *dateURI) (*dto.DaySheetDto, error) {
			return h.svc.GetByDate(c.Request.Context(), in.Date, p)
		},
	})
	ez.RegisterAction(e, ez.Action[struct{}, []dto.DaySheetDto]{
		Method: "GET", Path: "/getAllNotConfirmed", Binder: ez.BindNone, Auth: true,
		Handler: func(c *gin.Context, p domain.Principal, _ *struct{}) ([]dto.DaySheetDto, error) {
			return h.svc.ListUnconfirmed(c.Request.Context(), p)
		},
	})
	ez.RegisterAction(e, ez.Action[monthURI, []dto.DaySheetDto]{
		Method: "GET", Path: "/getAllByMonth/:month", Binder: ez.BindURI, Auth: true,
		Handler: func(c *gin.Context, p domain.Principal, in *monthURI) ([]dto.DaySheetDto, error) {
			return h.svc.ListByMonth(c.Request.Context(), in.Month, p)
		},
	})
	ez.RegisterAction(e, ez.Action[userMonthURI, []dto.DaySheetDto]{
		Method: "GET", Path: "/getAllByParticipantAndMonth/:userId/:month", Binder: ez.BindURI, Auth: true,
		Handler: func(c *gin.Context, p domain.Principal, in *userMonthURI) ([]dto.DaySheetDto, error) {
			return h.svc.ListByOwnerAndMonth(c.Request.Context(), in.UserID, in.Month, p)
		},
	})
	ez.RegisterAction(e, ez.Action[userDateURI, *dto.DaySheetDto]{
		Method: "GET", Path: "/getByParticipantAndDate/:userId/:date", Binder: ez.BindURI, Auth: true,
		Handler: func(c *gin.Context, p domain.Principal, in *userDateURI) (*dto.DaySheetDto, error) {
			return h.svc.GetByParticipantAndDate(c.Request.Context(), in.UserID, in.Date, p)
		},
	})
	ez.RegisterAction(e, ez.Action[dto.UpdateDayNotesRequest, *dto.DaySheetDto]{
		Method: "PUT", Path: "/updateDayNotes", Binder: ez.BindJSON, Auth: true,
		Handler: func(c *gin.Context, p domain.Principal, in *dto.UpdateDayNotesRequest) (*dto.DaySheetDto, error) {
			return h.svc.UpdateNotes(c.Request.Context(), in, p)
		},
	})
	for path, confirmed := range map[string]bool{"/confirm/:id": true, "/revoke/:id": false} {
		ez.RegisterAction(e, ez.Action[idURI, *dto.DaySheetDto]{
			Method: "PUT", Path: path, Binder: ez.BindURI, Auth: true,
			Handler: func(c *gin.Context, p domain.Principal, in *idURI) (*dto.DaySheetDto, error) {
				return h.svc.SetConfirmed(c.Request.Context(), in.ID, confirmed, p)
			},
		})
	}
	ez.RegisterAction(e, ez.Action[idURI, Empty]{
		Method: "DELETE", Path: "/:id", Binder: ez.BindURI, Auth: true,
		Handler: func(c *gin.Context, p domain.Principal, in *idURI) (Empty, error) {
			return Empty{}, h.svc.Delete(c.Request.Context(), in.ID, p)
		},
	})

	grp.GET("/export/:month", func(c *gin.Context) {
		p, ok := middleware.PrincipalOf(c)
		if !ok {
			e.Fail(c, ez.Unauthorized("unauthorized"), 0)
			return
		}
		buf, name, err := h.export.ExportMonth(c.Request.Context(), c.Param("month"), p)
		if err != nil {
			e.Fail(c, err, 0)
			return
		}
		ez.Download(c, name, xlsxContentType, buf.Bytes())
	})
}
