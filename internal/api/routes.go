package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitflow/onboarding-app/internal/service"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	onboardingService service.OnboardingService,
	programService service.ProgramService,
	exerciseService service.ExerciseService,
) {
	authHandler := NewAuthHandler(authService)
	onboardingHandler := NewOnboardingHandler(onboardingService)
	programHandler := NewProgramHandler(programService)
	exerciseHandler := NewExerciseHandler(exerciseService)

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
		protected.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userID.Hex()})
		})

		// --- Onboarding Flow ---
		onboardingGroup := protected.Group("/onboarding")
		{
			// GET /api/v1/onboarding/status: derived step + completion flags
			onboardingGroup.GET("/status", onboardingHandler.Status)

			// Step 1: survey
			onboardingGroup.POST("/survey", onboardingHandler.SubmitSurvey)

			// Step 2: assessment
			onboardingGroup.POST("/assessment", onboardingHandler.GenerateAssessment)
			onboardingGroup.GET("/assessment", onboardingHandler.GetAssessment)
			onboardingGroup.POST("/assessment/approve", onboardingHandler.ApproveAssessment)

			// Step 3: program
			onboardingGroup.POST("/program", onboardingHandler.GenerateProgram)
			onboardingGroup.POST("/program/approve", onboardingHandler.ApproveProgram)
		}

		// --- Programs (step 4: scheduling + export) ---
		programGroup := protected.Group("/programs")
		{
			programGroup.GET("/latest", programHandler.GetLatestProgram)
			programGroup.GET("/:programId", programHandler.GetProgram)
			programGroup.POST("/:programId/schedule", programHandler.ScheduleProgram)
			programGroup.POST("/:programId/export", programHandler.ExportCalendar)
		}

		// --- Exercise Catalog ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
		}
	}
}
