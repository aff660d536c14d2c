package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"e-course-api/internal/core/auth"
	"e-course-api/internal/core/cache"
	"e-course-api/internal/transport/http/ez"
	resp "e-course-api/internal/transport/http/response"
)

// AuthJWT 校验 Bearer token；deny 非空时拒绝已注销的 token。requireRole 为空表示任意角色
func AuthJWT(j *auth.JWTer, deny cache.Denylist, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(http.StatusUnauthorized, ""))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(http.StatusUnauthorized, ""))
			return
		}
		if deny != nil {
			revoked, err := deny.IsRevoked(c, claims.ID)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, resp.Error(http.StatusServiceUnavailable, ""))
				return
			}
			if revoked {
				c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(http.StatusUnauthorized, "Token has been revoked"))
				return
			}
		}
		if requireRole != "" && claims.Role != requireRole {
			c.AbortWithStatusJSON(http.StatusForbidden, resp.Error(http.StatusForbidden, ""))
			return
		}
		c.Set(ez.CtxUserID, claims.UID)
		c.Set(ez.CtxRole, claims.Role)
		c.Set(ez.CtxClaims, claims)
		c.Next()
	}
}
