package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/comedor/comedor/internal/domain/model"
	pkgAuth "github.com/comedor/comedor/internal/pkg/auth"
)

const (
	// PrincipalContextKey is a gin context key for the authenticated principal.
	PrincipalContextKey = "principal"
	authCookieName      = "comedor_token"
)

// TokenParser resolves a bearer token into a principal.
type TokenParser interface {
	ParseToken(token string) (pkgAuth.Principal, error)
}

// CustomerRequired ensures the request is made by an authenticated customer.
func CustomerRequired(parser TokenParser) gin.HandlerFunc {
	return requirePrincipal(parser, func(p pkgAuth.Principal) bool {
		return p.Kind == pkgAuth.KindCustomer
	})
}

// StaffRequired ensures the request is made by staff. With roles given, only
// those roles pass.
func StaffRequired(parser TokenParser, roles ...model.Role) gin.HandlerFunc {
	return requirePrincipal(parser, func(p pkgAuth.Principal) bool {
		if p.Kind != pkgAuth.KindStaff {
			return false
		}
		if len(roles) == 0 {
			return true
		}
		for _, role := range roles {
			if p.Role == role {
				return true
			}
		}
		return false
	})
}

func requirePrincipal(parser TokenParser, allow func(pkgAuth.Principal) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		principal, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		if !allow(principal) {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		c.Set(PrincipalContextKey, principal)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
