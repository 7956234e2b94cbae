package routes

import (
	"github.com/SierraFuelsDev/fuelwarden/controllers"
	"github.com/SierraFuelsDev/fuelwarden/middlewares"
	"github.com/SierraFuelsDev/fuelwarden/services"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Auth       *controllers.AuthController
	Profile    *controllers.ProfileController
	Meal       *controllers.MealController
	Activity   *controllers.ActivityController
	Onboarding *controllers.OnboardingController
	Stats      *controllers.StatsController
	Realtime   *controllers.RealtimeController
}

func SetupRouter(registry *services.SessionRegistry, c Controllers) *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
		auth.POST("/recovery", c.Auth.Recovery)
		auth.GET("/oauth/:provider", c.Auth.OAuthURL)
	}

	protected := r.Group("/")
	protected.Use(middlewares.AuthMiddleware(registry))
	{
		protected.POST("/auth/logout", c.Auth.Logout)
		protected.GET("/auth/me", c.Auth.Me)

		user := protected.Group("/user")
		{
			user.GET("/profile", c.Profile.GetProfile)
			user.POST("/profile", c.Profile.CreateProfile)
			user.PATCH("/profile", c.Profile.UpdateProfile)
			user.PUT("/profile", c.Profile.UpsertProfile)
			user.DELETE("/profile", c.Profile.DeleteProfile)
			user.GET("/stats", c.Stats.GetUserStats)
		}

		meals := protected.Group("/meals")
		{
			meals.POST("/logs", c.Meal.CreateMealLog)
			meals.GET("/logs", c.Meal.ListMealLogs)
			meals.PATCH("/logs/:id", c.Meal.UpdateMealLog)
			meals.DELETE("/logs/:id", c.Meal.DeleteMealLog)

			meals.POST("/plans", c.Meal.CreateMealPlan)
			meals.GET("/plans", c.Meal.ListMealPlans)
			meals.PATCH("/plans/:id", c.Meal.UpdateMealPlan)
			meals.DELETE("/plans/:id", c.Meal.DeleteMealPlan)
		}

		activities := protected.Group("/activities")
		{
			activities.GET("/schedule", c.Activity.GetSchedule)
			activities.PUT("/schedule", c.Activity.UpsertSchedule)
			activities.DELETE("/schedule", c.Activity.DeleteSchedule)
		}

		onboarding := protected.Group("/onboarding")
		{
			onboarding.GET("", c.Onboarding.GetState)
			onboarding.POST("/next", c.Onboarding.Next)
			onboarding.POST("/back", c.Onboarding.Previous)
			onboarding.POST("/submit", c.Onboarding.Submit)
		}

		protected.GET("/realtime/ws", c.Realtime.DocumentsWS)
	}

	return r
}
