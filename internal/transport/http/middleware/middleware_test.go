package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"compass-backend/internal/core/auth"
	"compass-backend/internal/domain"
)

type memUsers struct {
	users map[string]domain.Role
	err   error
}

func (m memUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	role, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &domain.User{ID: id, Role: role}, nil
}

func (m memUsers) FindByIDs(context.Context, []string) ([]domain.User, error) { return nil, nil }
func (m memUsers) List(context.Context) ([]domain.User, error)                { return nil, nil }
func (m memUsers) Save(context.Context, *domain.User) error                   { return nil }

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/who", func(c *gin.Context) {
		p, ok := PrincipalOf(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, p.ID+" "+string(p.Role))
	})
	return r
}

func get(r http.Handler, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthChain(t *testing.T) {
	j, err := auth.New("test-secret", "", "", "", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	anna, _ := j.Issue("auth0|anna")
	stranger, _ := j.Issue("auth0|nobody")

	users := memUsers{users: map[string]domain.Role{"auth0|anna": domain.RoleParticipant}}
	r := newEngine(AuthJWT(j), ResolveRole(users, zap.NewNop()))

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"no header", "", http.StatusUnauthorized, ""},
		{"garbage", "Bearer not-a-jwt", http.StatusUnauthorized, ""},
		{"known user", "Bearer " + anna, http.StatusOK, "auth0|anna PARTICIPANT"},
		{"no local record", "Bearer " + stranger, http.StatusOK, "auth0|nobody NO_ROLE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := map[string]string{}
			if tt.header != "" {
				h["Authorization"] = tt.header
			}
			w := get(r, h)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}
			if tt.body != "" && w.Body.String() != tt.body {
				t.Fatalf("body = %q", w.Body.String())
			}
		})
	}
}

func TestResolveRoleStoreFailure(t *testing.T) {
	j, _ := auth.New("test-secret", "", "", "", time.Minute)
	tok, _ := j.Issue("auth0|anna")
	r := newEngine(AuthJWT(j), ResolveRole(memUsers{err: errors.New("db down")}, zap.NewNop()))
	if w := get(r, map[string]string{"Authorization": "Bearer " + tok}); w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	r := newEngine(RequestID())

	w := get(r, map[string]string{KeyRequestID: "abc-123_x.y"})
	if got := w.Header().Get(KeyRequestID); got != "abc-123_x.y" {
		t.Fatalf("echoed id = %q", got)
	}

	for name, in := range map[string]string{
		"missing":  "",
		"too long": strings.Repeat("a", 65),
		"bad char": "abc\r\nx",
		"spaces":   "a b",
	} {
		w = get(r, map[string]string{KeyRequestID: in})
		got := w.Header().Get(KeyRequestID)
		if _, err := uuid.Parse(got); err != nil || got == in {
			t.Fatalf("%s: id = %q", name, got)
		}
	}
}

func TestMetricsUnmatchedRoutes(t *testing.T) {
	httpReqTotal.Reset()
	httpLatency.Reset()
	r := newEngine(Metrics())

	for _, p := range []string{"/nope/1", "/nope/2"} {
		req := httptest.NewRequest(http.MethodGet, p, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}
	if n := testutil.CollectAndCount(httpReqTotal); n != 1 {
		t.Fatalf("series = %d, want 1", n)
	}
	if v := testutil.ToFloat64(httpReqTotal.WithLabelValues("unmatched", http.MethodGet, "404")); v != 2 {
		t.Fatalf("unmatched count = %v", v)
	}

	get(r, nil)
	if v := testutil.ToFloat64(httpReqTotal.WithLabelValues("/who", http.MethodGet, "200")); v != 1 {
		t.Fatalf("route count = %v", v)
	}
}

func TestRateLimit(t *testing.T) {
	r := newEngine(RateLimit(0.001, 1))
	if w := get(r, nil); w.Code != http.StatusOK {
		t.Fatalf("first: status = %d", w.Code)
	}
	if w := get(r, nil); w.Code != http.StatusTooManyRequests {
		t.Fatalf("second: status = %d", w.Code)
	}
}

func TestRateLimitPerIP(t *testing.T) {
	r := newEngine(RateLimitPerIP(0.001, 1))
	if w := get(r, nil); w.Code != http.StatusOK {
		t.Fatalf("first: status = %d", w.Code)
	}
	if w := get(r, nil); w.Code != http.StatusTooManyRequests {
		t.Fatalf("second: status = %d", w.Code)
	}
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(zap.NewNop()))
	r.GET("/panic", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Timeout(10 * time.Millisecond))
	r.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))
	if w.Code != http.StatusGatewayTimeout {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestAccessLogKeepsStatus(t *testing.T) {
	r := newEngine(RequestID(), AccessLog(zap.NewNop()))
	if w := get(r, map[string]string{}); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestMaxBodyBytes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(MaxBodyBytes(8))
	r.POST("/read", func(c *gin.Context) {
		if _, err := c.GetRawData(); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/read", strings.NewReader("0123456789")))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d", w.Code)
	}
}
