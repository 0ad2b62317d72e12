package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"compass-backend/internal/domain"
	"compass-backend/internal/dto"
	"compass-backend/internal/service"
	"compass-backend/internal/transport/http/middleware"
)

var (
	admin       = domain.Principal{ID: "auth0|ada", Role: domain.RoleAdmin}
	worker      = domain.Principal{ID: "auth0|walt", Role: domain.RoleSocialWorker}
	participant = domain.Principal{ID: "auth0|anna", Role: domain.RoleParticipant}
)

type apiModule interface{ MountAPI(*gin.RouterGroup) }

// newTestEngine mounts mods behind a stub auth step; a nil p leaves the request anonymous.
func newTestEngine(p *domain.Principal, mods ...apiModule) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if p != nil {
			c.Set(middleware.KeyUserID, p.ID)
			c.Set(middleware.KeyRole, string(p.Role))
		}
		c.Next()
	})
	for _, m := range mods {
		m.MountAPI(&r.RouterGroup)
	}
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var rd *bytes.Reader
	if body == "" {
		rd = bytes.NewReader(nil)
	} else {
		rd = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

type errBody struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// stubDaySheets implements only what the tests call; the embedded interface
// panics on anything else.
type stubDaySheets struct {
	service.DaySheetService
	sheet     *dto.DaySheetDto
	list      []dto.DaySheetDto
	err       error
	confirmed *bool
	deleted   uint64
	args      []string
}

func (s *stubDaySheets) Create(_ context.Context, req *dto.CreateDaySheetRequest, _ domain.Principal) (*dto.DaySheetDto, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.DaySheetDto{ID: 1, Date: req.Date, DayNotes: req.DayNotes}, nil
}

func (s *stubDaySheets) GetByID(_ context.Context, id uint64, _ domain.Principal) (*dto.DaySheetDto, error) {
	return s.sheet, s.err
}

func (s *stubDaySheets) ListByOwnerAndMonth(_ context.Context, ownerID, month string, _ domain.Principal) ([]dto.DaySheetDto, error) {
	s.args = []string{ownerID, month}
	return s.list, s.err
}

func (s *stubDaySheets) SetConfirmed(_ context.Context, id uint64, confirmed bool, _ domain.Principal) (*dto.DaySheetDto, error) {
	s.confirmed = &confirmed
	return &dto.DaySheetDto{ID: id, Confirmed: confirmed}, s.err
}

func (s *stubDaySheets) Delete(_ context.Context, id uint64, _ domain.Principal) error {
	s.deleted = id
	return s.err
}

type stubExport struct {
	err error
}

func (s *stubExport) ExportMonth(_ context.Context, month string, _ domain.Principal) (*bytes.Buffer, string, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	return bytes.NewBufferString("xlsx-bytes"), "daysheets_" + month + ".xlsx", nil
}
