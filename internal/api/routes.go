package api

import (
	"net/http"

	"fitflow/schedule-app/internal/domain" // Needed for RoleMiddleware
	"fitflow/schedule-app/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	routineService service.RoutineService,
	scheduleService service.ScheduleService,
	sessionService service.SessionService,
	mediaService service.MediaService,
) {

	authHandler := NewAuthHandler(authService)
	routineHandler := NewRoutineHandler(routineService)
	scheduleHandler := NewScheduleHandler(scheduleService)
	sessionHandler := NewSessionHandler(sessionService)
	mediaHandler := NewMediaHandler(mediaService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)

		// --- Trainer Specific Routes ---
		// Require authentication AND the 'trainer' role.
		trainerApiGroup := protected.Group("/trainer")
		trainerApiGroup.Use(RoleMiddleware(domain.RoleTrainer))
		{
			// POST /api/v1/trainer/clients
			trainerApiGroup.POST("/clients", routineHandler.AddClient)
			// GET /api/v1/trainer/clients
			trainerApiGroup.GET("/clients", routineHandler.GetClients)

			// --- Routine Template Management ---
			trainerApiGroup.POST("/routines", routineHandler.CreateRoutine)
			trainerApiGroup.GET("/routines", routineHandler.GetRoutines)
			trainerApiGroup.PUT("/routines/:routineId", routineHandler.UpdateRoutine)
			trainerApiGroup.DELETE("/routines/:routineId", routineHandler.DeleteRoutine)

			// --- Assignment Management ---
			// POST /api/v1/trainer/clients/{clientId}/assignments
			trainerApiGroup.POST("/clients/:clientId/assignments", routineHandler.AssignRoutine)
			// GET /api/v1/trainer/clients/{clientId}/assignments
			trainerApiGroup.GET("/clients/:clientId/assignments", routineHandler.GetClientAssignments)
		}

		// --- Client Specific Routes ---
		clientApiGroup := protected.Group("/client")
		clientApiGroup.Use(RoleMiddleware(domain.RoleClient))
		{
			// --- Weekly Schedule ---
			// GET /api/v1/client/schedule?week=YYYY-MM-DD
			clientApiGroup.GET("/schedule", scheduleHandler.GetWeekSchedule)
			// POST /api/v1/client/schedule/skips
			clientApiGroup.POST("/schedule/skips", scheduleHandler.SkipDay)

			// --- Workout Sessions ---
			clientApiGroup.POST("/sessions", sessionHandler.StartSession)
			clientApiGroup.POST("/sessions/:sessionId/finish", sessionHandler.FinishSession)
			clientApiGroup.GET("/sessions", sessionHandler.GetSessions)

			// --- Progress Photos ---
			clientApiGroup.POST("/photos/upload-url", mediaHandler.RequestUploadURL)
			clientApiGroup.POST("/photos", mediaHandler.ConfirmUpload)
			clientApiGroup.GET("/photos", mediaHandler.GetPhotos)
		}
	}
}
