package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"compass-backend/internal/core/auth"
	"compass-backend/internal/core/config"
	"compass-backend/internal/domain"
	"compass-backend/internal/transport/http/middleware"
)

type roleStore map[string]domain.Role

func (s roleStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	r, ok := s[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &domain.User{ID: id, Role: r}, nil
}
func (s roleStore) FindByIDs(context.Context, []string) ([]domain.User, error) { return nil, nil }
func (s roleStore) List(context.Context) ([]domain.User, error)                { return nil, nil }
func (s roleStore) Save(context.Context, *domain.User) error                   { return nil }

// whoModule records mount order and echoes the caller.
type whoModule struct {
	name     string
	priority int
	order    *[]string
}

func (m whoModule) Priority() int { return m.priority }

func (m whoModule) MountAPI(g *gin.RouterGroup) {
	*m.order = append(*m.order, m.name)
	g.GET("/"+m.name, func(c *gin.Context) {
		p, _ := middleware.PrincipalOf(c)
		c.String(http.StatusOK, p.ID+" "+string(p.Role))
	})
}

type publicModule struct{}

func (publicModule) MountPublic(g *gin.RouterGroup) {
	g.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
}

func (publicModule) MountAdmin(g *gin.RouterGroup) {
	g.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
}

func serve(h http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestAPIEngine(t *testing.T) {
	gin.SetMode(gin.TestMode)
	j, err := auth.New("router-secret", "", "", "", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	tok, _ := j.Issue("auth0|walt")

	var order []string
	r := NewAPIEngine(zap.NewNop(), config.HTTP{RequestTimeoutSec: 5}, j,
		roleStore{"auth0|walt": domain.RoleSocialWorker},
		whoModule{name: "late", priority: 50, order: &order},
		whoModule{name: "early", priority: 10, order: &order},
		publicModule{},
	)

	if strings.Join(order, ",") != "early,late" {
		t.Fatalf("mount order = %v", order)
	}
	if w := serve(r, "/health", ""); w.Code != http.StatusOK {
		t.Fatalf("health: status = %d", w.Code)
	}
	if w := serve(r, "/early", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: status = %d", w.Code)
	}
	w := serve(r, "/late", tok)
	if w.Code != http.StatusOK || w.Body.String() != "auth0|walt SOCIAL_WORKER" {
		t.Fatalf("authed: %d %q", w.Code, w.Body.String())
	}
	if w.Header().Get(middleware.KeyRequestID) == "" {
		t.Fatal("missing request id header")
	}
}

func TestAdminEngine(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewAdminEngine(zap.NewNop(), publicModule{})

	if w := serve(r, "/health", ""); w.Code != http.StatusOK {
		t.Fatalf("health: status = %d", w.Code)
	}
	if w := serve(r, "/admin/v1/ping", ""); w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Fatalf("admin module: %d %q", w.Code, w.Body.String())
	}
	w := serve(r, "/metrics", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "go_goroutines") {
		t.Fatalf("metrics: status = %d", w.Code)
	}
}
