package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"fitflow/onboarding-app/internal/domain"
	"fitflow/onboarding-app/internal/service"
)

// OnboardingHandler exposes the survey → assessment → program flow.
type OnboardingHandler struct {
	onboardingService service.OnboardingService
}

// NewOnboardingHandler creates a new OnboardingHandler.
func NewOnboardingHandler(onboardingService service.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboardingService: onboardingService}
}

// --- Request/Response Structs ---

type SurveyAnswerRequest struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
}

type SubmitSurveyRequest struct {
	Answers []SurveyAnswerRequest `json:"answers" binding:"required,min=1,dive"`
}

// --- Handler Methods ---

// SubmitSurvey stores the onboarding questionnaire answers.
func (h *OnboardingHandler) SubmitSurvey(c *gin.Context) {
	var req SubmitSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	answers := make([]domain.SurveyAnswer, len(req.Answers))
	for i, a := range req.Answers {
		answers[i] = domain.SurveyAnswer{Question: a.Question, Answer: a.Answer}
	}

	survey, err := h.onboardingService.SubmitSurvey(c.Request.Context(), userID, answers)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to store survey.")
		}
		return
	}

	c.JSON(http.StatusCreated, survey)
}

// GenerateAssessment runs AI assessment generation over the latest survey.
func (h *OnboardingHandler) GenerateAssessment(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	assessment, err := h.onboardingService.GenerateAssessment(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSurveyRequired):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrGenerationUnavailable):
			abortWithError(c, http.StatusBadGateway, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate assessment.")
		}
		return
	}

	c.JSON(http.StatusCreated, assessment)
}

// GetAssessment returns the latest assessment for review.
func (h *OnboardingHandler) GetAssessment(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	assessment, err := h.onboardingService.GetAssessment(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrAssessmentRequired) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve assessment.")
		}
		return
	}

	c.JSON(http.StatusOK, assessment)
}

// ApproveAssessment approves the latest assessment and advances onboarding.
func (h *OnboardingHandler) ApproveAssessment(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	if err := h.onboardingService.ApproveAssessment(c.Request.Context(), userID); err != nil {
		if errors.Is(err, service.ErrAssessmentRequired) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to approve assessment.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"approved": true})
}

// GenerateProgram runs program generation from the approved assessment.
func (h *OnboardingHandler) GenerateProgram(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	program, err := h.onboardingService.GenerateProgram(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAssessmentRequired), errors.Is(err, service.ErrAssessmentNotApproved):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrGenerationUnavailable):
			abortWithError(c, http.StatusBadGateway, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate program.")
		}
		return
	}

	c.JSON(http.StatusCreated, program)
}

// ApproveProgram approves the latest program and advances onboarding.
func (h *OnboardingHandler) ApproveProgram(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	if err := h.onboardingService.ApproveProgram(c.Request.Context(), userID); err != nil {
		if errors.Is(err, service.ErrProgramRequired) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to approve program.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"approved": true})
}

// Status returns the derived onboarding state for the current user.
func (h *OnboardingHandler) Status(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	status, err := h.onboardingService.Status(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to compute onboarding status.")
		}
		return
	}

	c.JSON(http.StatusOK, status)
}
