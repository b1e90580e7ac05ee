package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/contesthub/backend/internal/common"
	"github.com/contesthub/backend/internal/domain"
	"github.com/contesthub/backend/internal/service"
)

const (
	// AuthorizationHeader is the header key for the JWT token
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for the JWT token
	BearerPrefix = "Bearer "
	// IdentityKey is the context key for the authenticated identity
	IdentityKey = "identity"
)

// AuthMiddleware resolves the caller's identity from the bearer token. A
// missing header, a bad signature, a malformed claim set and an unknown role
// all produce the same Unauthorized response; the caller learns nothing
// about which check failed.
func AuthMiddleware(userService *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		token := strings.TrimPrefix(authHeader, BearerPrefix)
		if authHeader == "" || token == authHeader || token == "" {
			common.AbortWithError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		identity, err := userService.ValidateAccessToken(token)
		if err != nil {
			common.AbortWithError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// RequireCreator gates creator-only routes. Runs after AuthMiddleware, so an
// absent identity is a server wiring bug and still reads as Unauthorized.
func RequireCreator() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			common.AbortWithError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		switch identity.Role {
		case domain.RoleCreator:
			c.Next()
		case domain.RoleContestee:
			common.AbortWithError(c, http.StatusForbidden, "Forbidden")
		default:
			common.AbortWithError(c, http.StatusForbidden, "Forbidden")
		}
	}
}

// GetIdentity extracts the authenticated identity from the gin context
func GetIdentity(c *gin.Context) (service.Identity, bool) {
	value, exists := c.Get(IdentityKey)
	if !exists {
		return service.Identity{}, false
	}
	identity, ok := value.(service.Identity)
	return identity, ok
}

// RequireIdentity ensures a caller is authenticated and returns the
// identity, aborting the request otherwise
func RequireIdentity(c *gin.Context) (service.Identity, bool) {
	identity, ok := GetIdentity(c)
	if !ok {
		common.AbortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return service.Identity{}, false
	}
	return identity, true
}
