package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"compass-backend/internal/core/auth"
	"compass-backend/internal/domain"
	resp "compass-backend/internal/transport/http/response"
)

// Context keys set by the auth chain.
const (
	KeyClaims = "claims"
	KeyUserID = "userId"
	KeyRole   = "role"
)

// AuthJWT requires a valid bearer token and stores its subject under KeyUserID.
func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			resp.Abort(c, resp.CodeUnauthorized, "missing token")
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil || claims.UserID() == "" {
			resp.Abort(c, resp.CodeUnauthorized, "invalid token")
			return
		}
		c.Set(KeyClaims, claims)
		c.Set(KeyUserID, claims.UserID())
		c.Next()
	}
}

// ResolveRole loads the caller's local role. Callers without a local record get NO_ROLE.
func ResolveRole(users domain.UserRepository, l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(KeyUserID)
		role := domain.RoleNone
		u, err := users.FindByID(c.Request.Context(), uid)
		switch {
		case err == nil:
			role = u.Role
		case errors.Is(err, domain.ErrNotFound):
		default:
			l.Error("resolve role", zap.String("uid", uid), zap.Error(err))
			resp.Abort(c, resp.CodeServerError, "internal error")
			return
		}
		c.Set(KeyRole, string(role))
		c.Next()
	}
}

// PrincipalOf returns the authenticated caller set by AuthJWT and ResolveRole.
func PrincipalOf(c *gin.Context) (domain.Principal, bool) {
	uid := c.GetString(KeyUserID)
	if uid == "" {
		return domain.Principal{}, false
	}
	role := domain.Role(c.GetString(KeyRole))
	if role == "" {
		role = domain.RoleNone
	}
	return domain.Principal{ID: uid, Role: role}, true
}
