package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/contesthub/backend/internal/common"
	"github.com/contesthub/backend/internal/domain"
	"github.com/contesthub/backend/internal/middleware"
	"github.com/contesthub/backend/internal/service"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetCurrentUser returns the authenticated user's profile
// GET /api/users/me
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	identity, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			common.RespondError(c, http.StatusNotFound, "User not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to retrieve user")
		return
	}

	common.RespondSuccess(c, http.StatusOK, user.ToResponse())
}
