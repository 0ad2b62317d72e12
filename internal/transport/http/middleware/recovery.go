package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	resp "compass-backend/internal/transport/http/response"
)

// Recovery turns a handler panic into a 500 body and logs it with the request id.
func Recovery(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				l.Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("rid", c.GetString(KeyRequestID)),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"))
				resp.Abort(c, resp.CodeServerError, "internal error")
			}
		}()
		c.Next()
	}
}
