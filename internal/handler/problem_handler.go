package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/contesthub/backend/internal/common"
	"github.com/contesthub/backend/internal/domain"
	"github.com/contesthub/backend/internal/middleware"
	"github.com/contesthub/backend/internal/service"
)

// ProblemHandler handles DSA problem HTTP requests
type ProblemHandler struct {
	problemService *service.ProblemService
}

// NewProblemHandler creates a new problem handler
func NewProblemHandler(problemService *service.ProblemService) *ProblemHandler {
	return &ProblemHandler{
		problemService: problemService,
	}
}

// AddProblem adds a DSA problem with test cases to a contest
// POST /api/problems/:id/dsa
func (h *ProblemHandler) AddProblem(c *gin.Context) {
	identity, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	contestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid contest ID")
		return
	}

	var req domain.CreateDsaProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	problem, err := h.problemService.AddProblem(c.Request.Context(), contestID, identity.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrContestNotFound):
			common.RespondError(c, http.StatusNotFound, "Contest not found")
		case errors.Is(err, domain.ErrForbidden):
			common.RespondError(c, http.StatusForbidden, "Forbidden")
		case errors.Is(err, domain.ErrContestActive):
			common.RespondError(c, http.StatusConflict, "cannot add problems to an active contest")
		default:
			common.RespondError(c, http.StatusInternalServerError, "Failed to add problem")
		}
		return
	}

	common.RespondSuccess(c, http.StatusCreated, problem.View(true))
}

// GetProblem returns the role-filtered problem detail
// GET /api/problems/:id
func (h *ProblemHandler) GetProblem(c *gin.Context) {
	identity, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	problemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid problem ID")
		return
	}

	view, err := h.problemService.GetProblem(c.Request.Context(), problemID, identity.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrProblemNotFound) {
			common.RespondError(c, http.StatusNotFound, "Problem not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to retrieve problem")
		return
	}

	common.RespondSuccess(c, http.StatusOK, view)
}

// SubmitSolution submits code against a problem
// POST /api/problems/:id/submit
func (h *ProblemHandler) SubmitSolution(c *gin.Context) {
	identity, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	problemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid problem ID")
		return
	}

	var req domain.SubmitDsaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	verdicts, err := h.problemService.SubmitSolution(c.Request.Context(), problemID, identity.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProblemNotFound):
			common.RespondError(c, http.StatusNotFound, "Problem not found")
		case errors.Is(err, domain.ErrForbidden):
			common.RespondError(c, http.StatusForbidden, "creators cannot submit to their own problems")
		case errors.Is(err, domain.ErrContestNotActive):
			common.RespondError(c, http.StatusBadRequest, "Contest is not active")
		case errors.Is(err, domain.ErrJudgeUnavailable):
			common.RespondError(c, http.StatusServiceUnavailable, "code execution is not available")
		default:
			common.RespondError(c, http.StatusInternalServerError, "Failed to submit solution")
		}
		return
	}

	common.RespondSuccess(c, http.StatusOK, gin.H{
		"verdicts": verdicts,
	})
}
