package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"fitflow/schedule-app/internal/domain"
	"fitflow/schedule-app/internal/schedule"
	"fitflow/schedule-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScheduleHandler serves the client-facing weekly schedule endpoints.
type ScheduleHandler struct {
	scheduleService service.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleService service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// --- Request/Response Structs ---

type SkipDayRequest struct {
	AssignmentID string `json:"assignmentId" binding:"required"`
	Date         string `json:"date" binding:"required"` // YYYY-MM-DD
}

type ScheduleDayResponse struct {
	ID            string          `json:"id"`
	AssignmentID  string          `json:"assignmentId"`
	ScheduledDate string          `json:"scheduledDate"` // YYYY-MM-DD
	PlanType      domain.PlanType `json:"planType"`
	IsRestDay     bool            `json:"isRestDay"`
	IsCompleted   bool            `json:"isCompleted"`
	WasSkipped    bool            `json:"wasSkipped"`
	RoutineDay    *RoutineDayInfo `json:"routineDay,omitempty"`
	Session       *SessionInfo    `json:"session,omitempty"`
}

type RoutineDayInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type SessionInfo struct {
	Name string `json:"name"`
}

type WeekScheduleResponse struct {
	WeekStart string                `json:"weekStart"` // Monday, YYYY-MM-DD
	WeekEnd   string                `json:"weekEnd"`   // Sunday, YYYY-MM-DD
	Days      []ScheduleDayResponse `json:"days"`
}

// --- Handler Methods ---

// GetWeekSchedule godoc
// @Summary Get the derived schedule for one calendar week
// @Description Returns the Monday..Sunday schedule containing the week of
// @Description the "week" query date (defaults to today). The schedule is
// @Description recomputed on every call; failures degrade to an empty list.
// @Tags Client
// @Param week query string false "Any date inside the wanted week (YYYY-MM-DD)"
// @Router /client/schedule [get]
func (h *ScheduleHandler) GetWeekSchedule(c *gin.Context) {
	clientID, ok := mustUserObjectID(c)
	if !ok {
		return
	}

	anchor := time.Now().UTC()
	if weekParam := c.Query("week"); weekParam != "" {
		parsed, err := schedule.ParseDate(weekParam)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "week must be in YYYY-MM-DD format")
			return
		}
		anchor = parsed
	}

	days := h.scheduleService.GetWeekSchedule(c.Request.Context(), clientID, anchor)
	c.JSON(http.StatusOK, mapWeekToResponse(anchor, days))
}

// SkipDay godoc
// @Summary Mark a scheduled flexible-plan day as skipped
// @Description Records the skip and returns the recomputed schedule for the
// @Description week containing the skipped date.
// @Tags Client
// @Router /client/schedule/skips [post]
func (h *ScheduleHandler) SkipDay(c *gin.Context) {
	clientID, ok := mustUserObjectID(c)
	if !ok {
		return
	}

	var req SkipDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	assignmentID, err := primitive.ObjectIDFromHex(req.AssignmentID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid assignment ID format")
		return
	}
	date, err := schedule.ParseDate(req.Date)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
		return
	}

	days, err := h.scheduleService.SkipDay(c.Request.Context(), clientID, assignmentID, date)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAssignmentNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAssignmentAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrAssignmentInactive), errors.Is(err, service.ErrSkipNotFlexible):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrAlreadySkipped):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to skip day")
		}
		return
	}

	c.JSON(http.StatusOK, mapWeekToResponse(date, days))
}

// --- Mappers ---

func mapWeekToResponse(anchor time.Time, days []domain.ScheduleDay) WeekScheduleResponse {
	weekStart, weekEnd := schedule.WeekBounds(anchor)
	resp := WeekScheduleResponse{
		WeekStart: schedule.DateKey(weekStart),
		WeekEnd:   schedule.DateKey(weekEnd),
		Days:      make([]ScheduleDayResponse, 0, len(days)),
	}
	for i := range days {
		resp.Days = append(resp.Days, MapScheduleDayToResponse(&days[i]))
	}
	return resp
}

// MapScheduleDayToResponse converts a domain ScheduleDay to its DTO.
func MapScheduleDayToResponse(d *domain.ScheduleDay) ScheduleDayResponse {
	resp := ScheduleDayResponse{
		ID:            d.ID,
		AssignmentID:  d.AssignmentID.Hex(),
		ScheduledDate: schedule.DateKey(d.ScheduledDate),
		PlanType:      d.PlanType,
		IsRestDay:     d.IsRestDay,
		IsCompleted:   d.IsCompleted,
		WasSkipped:    d.WasSkipped,
	}
	if d.RoutineDay != nil {
		resp.RoutineDay = &RoutineDayInfo{Name: d.RoutineDay.Name, Description: d.RoutineDay.Description}
	}
	if d.Session != nil {
		resp.Session = &SessionInfo{Name: d.Session.Name}
	}
	return resp
}
