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

// ContestHandler handles contest-related HTTP requests
type ContestHandler struct {
	contestService *service.ContestService
}

// NewContestHandler creates a new contest handler
func NewContestHandler(contestService *service.ContestService) *ContestHandler {
	return &ContestHandler{
		contestService: contestService,
	}
}

// CreateContest creates a new contest owned by the authenticated creator
// POST /api/contests/create
func (h *ContestHandler) CreateContest(c *gin.Context) {
	identity, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	var req domain.CreateContestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	contest, err := h.contestService.CreateContest(c.Request.Context(), identity.UserID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			common.RespondError(c, http.StatusBadRequest, err.Error())
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to create contest")
		return
	}

	common.RespondSuccess(c, http.StatusCreated, contest.ToResponse())
}

// GetContest returns the role-filtered contest detail
// GET /api/contests/:contestId
func (h *ContestHandler) GetContest(c *gin.Context) {
	identity, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	contestID, err := uuid.Parse(c.Param("contestId"))
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid contest ID")
		return
	}

	detail, err := h.contestService.GetContestDetails(c.Request.Context(), contestID, identity.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrContestNotFound) {
			common.RespondError(c, http.StatusNotFound, "Contest not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to retrieve contest")
		return
	}

	common.RespondSuccess(c, http.StatusOK, detail)
}

// AddMcqQuestion adds a question to a contest
// POST /api/contests/:contestId/mcq
func (h *ContestHandler) AddMcqQuestion(c *gin.Context) {
	identity, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	contestID, err := uuid.Parse(c.Param("contestId"))
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid contest ID")
		return
	}

	var req domain.CreateMcqRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	question, err := h.contestService.AddMcqQuestion(c.Request.Context(), contestID, identity.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrContestNotFound):
			common.RespondError(c, http.StatusNotFound, "Contest not found")
		case errors.Is(err, domain.ErrForbidden):
			common.RespondError(c, http.StatusForbidden, "Forbidden")
		case errors.Is(err, domain.ErrValidation):
			common.RespondError(c, http.StatusBadRequest, err.Error())
		default:
			common.RespondError(c, http.StatusInternalServerError, "Failed to add question")
		}
		return
	}

	common.RespondSuccess(c, http.StatusCreated, question.View(true))
}

// SubmitAnswer submits an answer to a question in a contest
// POST /api/contests/:contestId/mcq/:mcqId/submit
func (h *ContestHandler) SubmitAnswer(c *gin.Context) {
	identity, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	contestID, err := uuid.Parse(c.Param("contestId"))
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid contest ID")
		return
	}

	questionID, err := uuid.Parse(c.Param("mcqId"))
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid question ID")
		return
	}

	var req domain.SubmitMcqRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.contestService.SubmitAnswer(c.Request.Context(), contestID, questionID, identity.UserID, req.SelectedOptionIndex)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrContestNotFound):
			common.RespondError(c, http.StatusNotFound, "Contest not found")
		case errors.Is(err, domain.ErrQuestionNotFound):
			common.RespondError(c, http.StatusNotFound, "Question not found")
		case errors.Is(err, domain.ErrContestNotActive):
			common.RespondError(c, http.StatusBadRequest, "Contest is not active")
		case errors.Is(err, domain.ErrAlreadySubmitted):
			common.RespondError(c, http.StatusConflict, "already submitted")
		default:
			common.RespondError(c, http.StatusInternalServerError, "Failed to submit answer")
		}
		return
	}

	common.RespondSuccess(c, http.StatusOK, result)
}
