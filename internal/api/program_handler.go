package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fitflow/onboarding-app/internal/domain"
	"fitflow/onboarding-app/internal/schedule"
	"fitflow/onboarding-app/internal/service"
)

// ProgramHandler exposes program retrieval, scheduling, and calendar export.
type ProgramHandler struct {
	programService service.ProgramService
}

// NewProgramHandler creates a new ProgramHandler.
func NewProgramHandler(programService service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

// --- Request/Response Structs ---

type SchedulePreferencesRequest struct {
	DaysOfWeek      []int  `json:"daysOfWeek" binding:"omitempty,max=7,dive,min=0,max=6"`
	TimeOfDay       string `json:"timeOfDay" binding:"omitempty"`
	SessionsPerWeek int    `json:"sessionsPerWeek" binding:"omitempty,min=1"`
}

type ScheduleProgramRequest struct {
	StartDate   string                      `json:"startDate" binding:"omitempty"`
	Preferences *SchedulePreferencesRequest `json:"preferences" binding:"omitempty"`
}

type ScheduleProgramResponse struct {
	Program            *domain.Program           `json:"program"`
	AppliedPreferences domain.AppliedPreferences `json:"appliedPreferences"`
}

// --- Handler Methods ---

func programIDFromPath(c *gin.Context) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(c.Param("programId"))
}

// GetProgram returns one program owned by the current user.
func (h *ProgramHandler) GetProgram(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	programID, err := programIDFromPath(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid program ID format.")
		return
	}

	program, err := h.programService.GetProgram(c.Request.Context(), userID, programID)
	if err != nil {
		h.abortWithProgramError(c, err, "Failed to retrieve program.")
		return
	}
	c.JSON(http.StatusOK, program)
}

// GetLatestProgram returns the user's most recent program.
func (h *ProgramHandler) GetLatestProgram(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	program, err := h.programService.GetLatestProgram(c.Request.Context(), userID)
	if err != nil {
		h.abortWithProgramError(c, err, "Failed to retrieve program.")
		return
	}
	c.JSON(http.StatusOK, program)
}

// ScheduleProgram places every session of the program on the calendar.
// startDate and preferences are optional; defaults are applied and echoed
// back as appliedPreferences.
func (h *ProgramHandler) ScheduleProgram(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	programID, err := programIDFromPath(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid program ID format.")
		return
	}

	var req ScheduleProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		// An empty body is fine; everything is optional.
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	var prefs *domain.SchedulingPreferences
	if req.Preferences != nil {
		prefs = &domain.SchedulingPreferences{
			DaysOfWeek:      req.Preferences.DaysOfWeek,
			TimeOfDay:       req.Preferences.TimeOfDay,
			SessionsPerWeek: req.Preferences.SessionsPerWeek,
		}
	}

	program, applied, err := h.programService.Schedule(c.Request.Context(), userID, programID, req.StartDate, prefs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStartDate),
			errors.Is(err, schedule.ErrInvalidPreferences):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, schedule.ErrMalformedProgram):
			abortWithError(c, http.StatusUnprocessableEntity, err.Error())
		default:
			h.abortWithProgramError(c, err, "Failed to schedule program.")
		}
		return
	}

	c.JSON(http.StatusOK, ScheduleProgramResponse{
		Program:            program,
		AppliedPreferences: applied,
	})
}

// ExportCalendar renders the scheduled program as .ics and returns a
// presigned download URL.
func (h *ProgramHandler) ExportCalendar(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	programID, err := programIDFromPath(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid program ID format.")
		return
	}

	url, err := h.programService.ExportCalendar(c.Request.Context(), userID, programID)
	if err != nil {
		if errors.Is(err, service.ErrProgramNotScheduled) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else {
			h.abortWithProgramError(c, err, "Failed to export calendar.")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"downloadUrl": url})
}

func (h *ProgramHandler) abortWithProgramError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrProgramNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrProgramAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
