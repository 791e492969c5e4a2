package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zachariahbioto-bot/Nutrition/controllers"
	"github.com/zachariahbioto-bot/Nutrition/middlewares"
)

// Controllers is everything the router mounts. Dev may be nil.
type Controllers struct {
	Auth          *controllers.AuthController
	Profile       *controllers.ProfileController
	Food          *controllers.FoodController
	Meal          *controllers.MealController
	Stats         *controllers.StatsController
	Recipe        *controllers.RecipeController
	Device        *controllers.DeviceController
	Notifications *controllers.NotificationController
	Realtime      *controllers.RealtimeController
	Dev           *controllers.DevController
}

func SetupRouter(jwtSecret []byte, ctl Controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", ctl.Auth.Register)
		auth.POST("/login", ctl.Auth.Login)
		auth.POST("/forgot-password", ctl.Auth.ForgotPassword)
		auth.POST("/reset-password", ctl.Auth.ResetPassword)
	}

	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware(jwtSecret))

	user := api.Group("/user")
	{
		user.GET("/profile", ctl.Profile.GetProfile)
		user.PUT("/profile", ctl.Profile.UpdateProfile)
		user.POST("/devices", ctl.Device.Register)
		user.POST("/notifications/toggle", ctl.Notifications.Toggle)
	}

	foods := api.Group("/foods")
	{
		foods.GET("/search", ctl.Food.Search)
		foods.POST("/import", ctl.Food.Import)
		foods.POST("/custom", ctl.Food.CreateCustom)
		foods.POST("/recognize", ctl.Food.Recognize)
		foods.GET("/:id", ctl.Food.Get)
	}

	meals := api.Group("/meals")
	{
		meals.GET("", ctl.Meal.List)
		meals.POST("", ctl.Meal.LogFood)
		meals.POST("/recipe", ctl.Meal.LogRecipe)
		meals.DELETE("/:id", ctl.Meal.Delete)
	}

	api.GET("/dashboard", ctl.Stats.Today)
	stats := api.Group("/stats")
	{
		stats.GET("/history", ctl.Stats.History)
		stats.GET("/summary", ctl.Stats.Summary)
		stats.POST("/recompute", ctl.Stats.Recompute)
	}

	recipes := api.Group("/recipes")
	{
		recipes.POST("/generate", ctl.Recipe.Generate)
		recipes.GET("/pending", ctl.Recipe.Pending)
		recipes.DELETE("/pending", ctl.Recipe.Discard)
		recipes.POST("/select", ctl.Recipe.Select)
		recipes.GET("", ctl.Recipe.List)
		recipes.DELETE("/:id", ctl.Recipe.Delete)
	}

	api.GET("/alerts", ctl.Notifications.ListAlerts)
	api.GET("/ws", ctl.Realtime.Stream)

	if ctl.Dev != nil {
		dev := api.Group("/dev")
		dev.POST("/push-test", ctl.Dev.PushTest)
		dev.POST("/upload", ctl.Dev.UploadImage)
	}

	return r
}
