package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"thryveiq/coaching-app/internal/service"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	profileService service.ProfileService,
	planService service.PlanService,
	chatService service.ChatService,
	stravaService service.StravaService,
) {
	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(profileService)
	planHandler := NewPlanHandler(planService)
	chatHandler := NewChatHandler(chatService)
	stravaHandler := NewStravaHandler(stravaService)
	calculatorHandler := NewCalculatorHandler()

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

		// Standalone calculators, no account required.
		apiV1.POST("/zones", calculatorHandler.ComputeZones)
		apiV1.GET("/phases", calculatorHandler.GetPhases)
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// --- Athlete Profile ---
		protected.PUT("/profiles", profileHandler.SaveProfile)
		protected.GET("/profiles/me", profileHandler.GetMyProfile)

		// --- Training Plans ---
		planGroup := protected.Group("/plans")
		{
			planGroup.POST("/generate", planHandler.GeneratePlan)
			planGroup.GET("/current", planHandler.GetCurrentPlan)
			planGroup.GET("/week/:week", planHandler.GetPlanWeek)
			planGroup.POST("/export", planHandler.ExportPlan)
		}

		// --- Coaching Chat ---
		protected.POST("/chat/message", chatHandler.SendMessage)

		// --- Strava Integration ---
		stravaGroup := protected.Group("/strava")
		{
			stravaGroup.POST("/exchange", stravaHandler.Exchange)
			stravaGroup.GET("/status", stravaHandler.Status)
			stravaGroup.GET("/activities", stravaHandler.RecentActivities)
			stravaGroup.DELETE("", stravaHandler.Disconnect)
		}
	}
}
