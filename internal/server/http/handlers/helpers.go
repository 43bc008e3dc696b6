package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comedor/comedor/internal/domain/model"
	pkgAuth "github.com/comedor/comedor/internal/pkg/auth"
	"github.com/comedor/comedor/internal/server/http/middleware"
)

// CurrentPrincipal extracts the authenticated principal from context.
func CurrentPrincipal(c *gin.Context) pkgAuth.Principal {
	val, ok := c.Get(middleware.PrincipalContextKey)
	if !ok {
		return pkgAuth.Principal{}
	}
	principal, _ := val.(pkgAuth.Principal)
	return principal
}

// CurrentStaff builds the acting staff member from the request principal.
func CurrentStaff(c *gin.Context) model.Staff {
	principal := CurrentPrincipal(c)
	return model.Staff{ID: principal.ID, Role: principal.Role}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
