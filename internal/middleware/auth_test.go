package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/contesthub/backend/internal/domain"
	"github.com/contesthub/backend/internal/infrastructure"
	"github.com/contesthub/backend/internal/service"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	userService := service.NewUserService(nil, &infrastructure.JWTConfig{
		SecretKey:          "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 168 * time.Hour,
		Issuer:             "contesthub",
	}, otel.Tracer("test"), zap.NewNop())

	router := gin.New()
	router.GET("/protected", AuthMiddleware(userService), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestAuthMiddlewareRejectsBadHeaders(t *testing.T) {
	router := newAuthRouter()

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no bearer prefix", "token-without-prefix"},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set(AuthorizationHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestRequireCreator(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(identity *service.Identity) *gin.Engine {
		router := gin.New()
		router.POST("/creator-only",
			func(c *gin.Context) {
				if identity != nil {
					c.Set(IdentityKey, *identity)
				}
				c.Next()
			},
			RequireCreator(),
			func(c *gin.Context) { c.Status(http.StatusCreated) },
		)
		return router
	}

	tests := []struct {
		name     string
		identity *service.Identity
		want     int
	}{
		{"creator passes", &service.Identity{UserID: uuid.New(), Role: domain.RoleCreator}, http.StatusCreated},
		{"contestee forbidden", &service.Identity{UserID: uuid.New(), Role: domain.RoleContestee}, http.StatusForbidden},
		{"unknown role forbidden", &service.Identity{UserID: uuid.New(), Role: domain.Role("admin")}, http.StatusForbidden},
		{"no identity unauthorized", nil, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/creator-only", nil)
			rec := httptest.NewRecorder()
			newRouter(tt.identity).ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
