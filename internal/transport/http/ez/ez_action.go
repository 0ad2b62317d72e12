package ez

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"compass-backend/internal/domain"
	"compass-backend/internal/transport/http/middleware"
	resp "compass-backend/internal/transport/http/response"
)

// EZ wraps a route group with the logger used for unexpected failures.
type EZ struct {
	g *gin.RouterGroup
	l *zap.Logger
}

func New(g *gin.RouterGroup, l *zap.Logger) EZ { return EZ{g: g, l: l} }

// GET registers a plain handler whose result is written as-is.
func (e EZ) GET(path string, h func(c *gin.Context) (any, error)) {
	e.g.GET(path, func(c *gin.Context) {
		data, err := h(c)
		if err != nil {
			e.Fail(c, err, 0)
			return
		}
		c.JSON(http.StatusOK, data)
	})
}

type Binder string

const (
	BindJSON  Binder = "json"
	BindQuery Binder = "query"
	BindURI   Binder = "uri"
	BindNone  Binder = "none" // handler reads c.Param itself
)

// AErr is an error that already knows its HTTP status.
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: resp.CodeForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// Action describes one endpoint: I is the bound input, O the JSON output.
type Action[I any, O any] struct {
	Method string
	Path   string
	Binder Binder
	Auth   bool
	Roles  []domain.Role
	// FailStatus replaces the status for not-found, conflict and invalid-input
	// failures on endpoints that report every client error the same way.
	FailStatus int
	Handler    func(c *gin.Context, p domain.Principal, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		var p domain.Principal
		if a.Auth {
			var ok bool
			if p, ok = middleware.PrincipalOf(c); !ok {
				resp.Abort(c, resp.CodeUnauthorized, "unauthorized")
				return
			}
			if len(a.Roles) > 0 && !hasRole(a.Roles, p.Role) {
				resp.Abort(c, resp.CodeForbidden, "forbidden")
				return
			}
		}

		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		case BindURI:
			bindErr = c.ShouldBindUri(&in)
		}
		if bindErr != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(bindErr, &tooLarge) {
				resp.Abort(c, resp.CodeTooLarge, "")
				return
			}
			resp.Abort(c, resp.CodeBadRequest, bindErr.Error())
			return
		}

		out, err := a.Handler(c, p, &in)
		if err != nil {
			e.Fail(c, err, a.FailStatus)
			return
		}
		c.JSON(http.StatusOK, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}

// Fail writes err as a failure body. Unclassified errors are logged and
// reported as 500 without detail.
func (e EZ) Fail(c *gin.Context, err error, failStatus int) {
	code := StatusOf(err, failStatus)
	msg := err.Error()
	if code == resp.CodeServerError {
		e.l.Error("request failed",
			zap.String("rid", c.GetString(middleware.KeyRequestID)),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		msg = ""
		var ae *AErr
		if errors.As(err, &ae) {
			msg = ae.Msg
		}
	}
	resp.Abort(c, code, msg)
}

// StatusOf maps an error onto its HTTP status.
func StatusOf(err error, failStatus int) int {
	var ae *AErr
	if errors.As(err, &ae) {
		return ae.Code
	}
	code := resp.CodeServerError
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return resp.CodeForbidden
	case errors.Is(err, domain.ErrUnavailable):
		return resp.CodeBadGateway
	case errors.Is(err, domain.ErrNotFound):
		code = resp.CodeNotFound
	case errors.Is(err, domain.ErrConflict):
		code = resp.CodeConflict
	case errors.Is(err, domain.ErrInvalidInput):
		code = resp.CodeBadRequest
	default:
		return code
	}
	if failStatus != 0 {
		return failStatus
	}
	return code
}

// Download streams a generated file as an attachment.
func Download(c *gin.Context, filename, contentType string, body []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, body)
}

// ParamUint reads a positive numeric path parameter.
func ParamUint(c *gin.Context, name string) (uint64, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, BadRequest("invalid " + name)
	}
	return v, nil
}

func hasRole(roles []domain.Role, r domain.Role) bool {
	for _, want := range roles {
		if want == r {
			return true
		}
	}
	return false
}
