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

// RoutineHandler holds the routine service dependency for trainer endpoints.
type RoutineHandler struct {
	routineService service.RoutineService
}

// NewRoutineHandler creates a new RoutineHandler.
func NewRoutineHandler(routineService service.RoutineService) *RoutineHandler {
	return &RoutineHandler{routineService: routineService}
}

// --- Request/Response Structs ---

type AddClientRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type RoutineDayRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type RoutineRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description"`
	DaysPerWeek int                 `json:"daysPerWeek" binding:"required,min=1,max=7"`
	Days        []RoutineDayRequest `json:"days" binding:"required,min=1,dive"`
}

type RoutineDayResponse struct {
	ID          string `json:"id"`
	DayNumber   int    `json:"dayNumber"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type RoutineResponse struct {
	ID          string               `json:"id"`
	TrainerID   string               `json:"trainerId"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	DaysPerWeek int                  `json:"daysPerWeek"`
	Days        []RoutineDayResponse `json:"days"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

type AssignRoutineRequest struct {
	RoutineID string `json:"routineId" binding:"required"`
	PlanType  string `json:"planType" binding:"required,oneof=strict flexible"`
	StartDate string `json:"startDate" binding:"required"` // YYYY-MM-DD
}

type AssignmentResponse struct {
	ID        string          `json:"id"`
	RoutineID string          `json:"routineId"`
	ClientID  string          `json:"clientId"`
	TrainerID string          `json:"trainerId"`
	PlanType  domain.PlanType `json:"planType"`
	StartDate string          `json:"startDate"` // YYYY-MM-DD
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
}

// --- Handler Methods ---

// AddClient godoc
// @Summary Add an existing client to the trainer's roster by email
// @Tags Trainer
// @Router /trainer/clients [post]
func (h *RoutineHandler) AddClient(c *gin.Context) {
	trainerID, ok := mustUserObjectID(c)
	if !ok {
		return
	}

	var req AddClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	client, err := h.routineService.AddClientByEmail(c.Request.Context(), trainerID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClientNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrClientNotRole), errors.Is(err, service.ErrClientAlreadyAssigned):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to add client")
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(client))
}

// GetClients godoc
// @Summary List clients managed by the trainer
// @Tags Trainer
// @Router /trainer/clients [get]
func (h *RoutineHandler) GetClients(c *gin.Context) {
	trainerID, ok := mustUserObjectID(c)
	if !ok {
		return
	}

	clients, err := h.routineService.GetManagedClients(c.Request.Context(), trainerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list clients")
		return
	}

	resp := make([]UserResponse, 0, len(clients))
	for i := range clients {
		resp = append(resp, MapUserToResponse(&clients[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// CreateRoutine godoc
// @Summary Create a new routine template
// @Tags Trainer
// @Router /trainer/routines [post]
func (h *RoutineHandler) CreateRoutine(c *gin.Context) {
	trainerID, ok := mustUserObjectID(c)
	if !ok {
		return
	}

	var req RoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	routine, err := h.routineService.CreateRoutine(c.Request.Context(), trainerID, req.Name, req.Description, req.DaysPerWeek, mapRoutineDayInputs(req.Days))
	if err != nil {
		handleRoutineServiceError(c, err, "Failed to create routine")
		return
	}

	c.JSON(http.StatusCreated, MapRoutineToResponse(routine))
}

// GetRoutines godoc
// @Summary List the trainer's routine templates
// @Tags Trainer
// @Router /trainer/routines [get]
func (h *RoutineHandler) GetRoutines(c *gin.Context) {
	trainerID, ok := mustUserObjectID(c)
	if !ok {
		return
	}

	routines, err := h.routineService.GetTrainerRoutines(c.Request.Context(), trainerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list routines")
		return
	}

	resp := make([]RoutineResponse, 0, len(routines))
	for i := range routines {
		resp = append(resp, MapRoutineToResponse(&routines[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateRoutine godoc
// @Summary Replace a routine's name, description and days
// @Tags Trainer
// @Router /trainer/routines/{routineId} [put]
func (h *RoutineHandler) UpdateRoutine(c *gin.Context) {
	trainerID, ok := mustUserObjectID(c)
	if !ok {
		return
	}

	routineID, err := primitive.ObjectIDFromHex(c.Param("routineId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid routine ID format")
		return
	}

	var req RoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	routine, err := h.routineService.UpdateRoutine(c.Request.Context(), trainerID, routineID, req.Name, req.Description, req.DaysPerWeek, mapRoutineDayInputs(req.Days))
	if err != nil {
		handleRoutineServiceError(c, err, "Failed to update routine")
		return
	}

	c.JSON(http.StatusOK, MapRoutineToResponse(routine))
}

// DeleteRoutine godoc
// @Summary Delete a routine template
// @Tags Trainer
// @Router /trainer/routines/{routineId} [delete]
func (h *RoutineHandler) DeleteRoutine(c *gin.Context) {
	trainerID, ok := mustUserObjectID(c)
	if !ok {
		return
	}

	routineID, err := primitive.ObjectIDFromHex(c.Param("routineId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid routine ID format")
		return
	}

	if err := h.routineService.DeleteRoutine(c.Request.Context(), trainerID, routineID); err != nil {
		handleRoutineServiceError(c, err, "Failed to delete routine")
		return
	}

	c.Status(http.StatusNoContent)
}

// AssignRoutine godoc
// @Summary Assign a routine to a managed client
// @Description Creates a new active assignment; any previous active
// @Description assignment of the same routine for this client is deactivated.
// @Tags Trainer
// @Router /trainer/clients/{clientId}/assignments [post]
func (h *RoutineHandler) AssignRoutine(c *gin.Context) {
	trainerID, ok := mustUserObjectID(c)
	if !ok {
		return
	}

	clientID, err := primitive.ObjectIDFromHex(c.Param("clientId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var req AssignRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	routineID, err := primitive.ObjectIDFromHex(req.RoutineID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid routine ID format")
		return
	}

	startDate, err := schedule.ParseDate(req.StartDate)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "startDate must be in YYYY-MM-DD format")
		return
	}

	assignment, err := h.routineService.AssignRoutine(c.Request.Context(), trainerID, clientID, routineID, domain.PlanType(req.PlanType), startDate)
	if err != nil {
		handleRoutineServiceError(c, err, "Failed to assign routine")
		return
	}

	c.JSON(http.StatusCreated, MapAssignmentToResponse(assignment))
}

// GetClientAssignments godoc
// @Summary List a managed client's routine assignments
// @Tags Trainer
// @Router /trainer/clients/{clientId}/assignments [get]
func (h *RoutineHandler) GetClientAssignments(c *gin.Context) {
	trainerID, ok := mustUserObjectID(c)
	if !ok {
		return
	}

	clientID, err := primitive.ObjectIDFromHex(c.Param("clientId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	assignments, err := h.routineService.GetClientAssignments(c.Request.Context(), trainerID, clientID)
	if err != nil {
		handleRoutineServiceError(c, err, "Failed to list assignments")
		return
	}

	resp := make([]AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		resp = append(resp, MapAssignmentToResponse(&assignments[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// --- Mappers and Helpers ---

func mapRoutineDayInputs(days []RoutineDayRequest) []service.RoutineDayInput {
	inputs := make([]service.RoutineDayInput, len(days))
	for i, d := range days {
		inputs[i] = service.RoutineDayInput{Name: d.Name, Description: d.Description}
	}
	return inputs
}

// MapRoutineToResponse converts a domain Routine to its DTO.
func MapRoutineToResponse(r *domain.Routine) RoutineResponse {
	if r == nil {
		return RoutineResponse{}
	}
	days := make([]RoutineDayResponse, len(r.Days))
	for i, d := range r.Days {
		days[i] = RoutineDayResponse{
			ID:          d.ID.Hex(),
			DayNumber:   d.DayNumber,
			Name:        d.Name,
			Description: d.Description,
		}
	}
	return RoutineResponse{
		ID:          r.ID.Hex(),
		TrainerID:   r.TrainerID.Hex(),
		Name:        r.Name,
		Description: r.Description,
		DaysPerWeek: r.DaysPerWeek,
		Days:        days,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// MapAssignmentToResponse converts a domain RoutineAssignment to its DTO.
func MapAssignmentToResponse(a *domain.RoutineAssignment) AssignmentResponse {
	if a == nil {
		return AssignmentResponse{}
	}
	return AssignmentResponse{
		ID:        a.ID.Hex(),
		RoutineID: a.RoutineID.Hex(),
		ClientID:  a.ClientID.Hex(),
		TrainerID: a.TrainerID.Hex(),
		PlanType:  a.PlanType,
		StartDate: schedule.DateKey(a.StartDate),
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
	}
}

// handleRoutineServiceError maps routine service errors to HTTP statuses.
func handleRoutineServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrRoutineNotFound), errors.Is(err, service.ErrClientNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrRoutineAccessDenied), errors.Is(err, service.ErrClientNotManaged):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrRoutineNoDays),
		errors.Is(err, service.ErrInvalidDaysPerWeek),
		errors.Is(err, service.ErrInvalidPlanType),
		errors.Is(err, service.ErrClientNotRole):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
