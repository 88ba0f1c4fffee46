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

// SessionHandler serves workout session endpoints for clients.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// --- Request/Response Structs ---

type StartSessionRequest struct {
	Name         string  `json:"name" binding:"required"`
	RoutineDayID *string `json:"routineDayId"` // Omit for free-form sessions
}

type SessionResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	StartTime    time.Time  `json:"startTime"`
	EndTime      *time.Time `json:"endTime,omitempty"`
	RoutineDayID *string    `json:"routineDayId,omitempty"`
	IsCompleted  bool       `json:"isCompleted"`
}

// --- Handler Methods ---

// StartSession godoc
// @Summary Start a workout session
// @Description Starts a session now. If routineDayId is given it must belong
// @Description to one of the client's active assignments.
// @Tags Client
// @Router /client/sessions [post]
func (h *SessionHandler) StartSession(c *gin.Context) {
	userID, ok := mustUserObjectID(c)
	if !ok {
		return
	}

	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	var routineDayID *primitive.ObjectID
	if req.RoutineDayID != nil && *req.RoutineDayID != "" {
		id, err := primitive.ObjectIDFromHex(*req.RoutineDayID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid routine day ID format")
			return
		}
		routineDayID = &id
	}

	session, err := h.sessionService.StartSession(c.Request.Context(), userID, req.Name, routineDayID)
	if err != nil {
		if errors.Is(err, service.ErrRoutineDayUnknown) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to start session")
		}
		return
	}

	c.JSON(http.StatusCreated, MapSessionToResponse(session))
}

// FinishSession godoc
// @Summary Finish an in-progress workout session
// @Tags Client
// @Router /client/sessions/{sessionId}/finish [post]
func (h *SessionHandler) FinishSession(c *gin.Context) {
	userID, ok := mustUserObjectID(c)
	if !ok {
		return
	}

	sessionID, err := primitive.ObjectIDFromHex(c.Param("sessionId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	session, err := h.sessionService.FinishSession(c.Request.Context(), userID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrSessionAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrSessionAlreadyFinished):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to finish session")
		}
		return
	}

	c.JSON(http.StatusOK, MapSessionToResponse(session))
}

// GetSessions godoc
// @Summary List the client's sessions within a date window
// @Description from/to are inclusive dates (YYYY-MM-DD); defaults to the
// @Description current week when omitted.
// @Tags Client
// @Router /client/sessions [get]
func (h *SessionHandler) GetSessions(c *gin.Context) {
	userID, ok := mustUserObjectID(c)
	if !ok {
		return
	}

	from, to := schedule.WeekBounds(time.Now().UTC())
	if fromParam := c.Query("from"); fromParam != "" {
		parsed, err := schedule.ParseDate(fromParam)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "from must be in YYYY-MM-DD format")
			return
		}
		from = parsed
	}
	if toParam := c.Query("to"); toParam != "" {
		parsed, err := schedule.ParseDate(toParam)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "to must be in YYYY-MM-DD format")
			return
		}
		to = parsed
	}
	if to.Before(from) {
		abortWithError(c, http.StatusBadRequest, "to must not be before from")
		return
	}

	sessions, err := h.sessionService.GetSessionsInWindow(c.Request.Context(), userID, from, to.AddDate(0, 0, 1))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list sessions")
		return
	}

	resp := make([]SessionResponse, 0, len(sessions))
	for i := range sessions {
		resp = append(resp, MapSessionToResponse(&sessions[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// MapSessionToResponse converts a domain WorkoutSession to its DTO.
func MapSessionToResponse(s *domain.WorkoutSession) SessionResponse {
	if s == nil {
		return SessionResponse{}
	}
	resp := SessionResponse{
		ID:          s.ID.Hex(),
		Name:        s.Name,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		IsCompleted: s.IsCompleted(),
	}
	if s.RoutineDayID != nil {
		hex := s.RoutineDayID.Hex()
		resp.RoutineDayID = &hex
	}
	return resp
}
