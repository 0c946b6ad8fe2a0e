package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/ClassroomPrayers/controllers"
	"github.com/ClassroomPrayers/initializers"
	"github.com/ClassroomPrayers/middlewares"
	"github.com/ClassroomPrayers/services"
)

func init() {
	initializers.LoadEnv()
	initializers.InitFirebase()
	initializers.InitStore()
	services.InitCounterService(initializers.Store)
	services.InitWeatherService()
	services.InitClassroomService()
	services.InitEmailService()
}

func main() {
	router := gin.Default()

	if err := controllers.InitDisplay(); err != nil {
		log.Fatal(err)
	}
	defer controllers.ShutdownDisplay()

	getKey := func(c *gin.Context) string {
		if gin.Mode() == gin.DebugMode {
			return c.FullPath()
		}
		return c.ClientIP()
	}

	router.POST("/login", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.UserLogin)
	router.POST("/auth/google", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.GoogleLogin)
	router.GET("/ping", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.Ping)

	// kiosk routes (the classroom display reads these without signing in)
	router.GET("/display", controllers.GetDisplay)
	router.GET("/intentions", controllers.GetIntentions)

	// Password reset endpoints (local accounts only)
	router.POST("/auth/forgot-password", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.ForgotPassword)
	router.POST("/auth/verify-reset-code", middlewares.RateLimitMiddleware(5, 5, getKey), controllers.VerifyResetCode)
	router.POST("/auth/reset-password", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.ResetPassword)

	auth := router.Group("/")
	auth.Use(middlewares.CheckAuth)
	auth.Use(middlewares.RateLimitMiddleware(10, 10, getKey))
	{

		// settings routes
		auth.GET("/settings", controllers.GetSettings)
		auth.PUT("/settings", controllers.SaveSettings)
		auth.POST("/amen", controllers.Amen)
		auth.GET("/leaders", controllers.GetLeaders)
		auth.POST("/leaders/pick", controllers.PickLeader)

		// intention routes
		auth.POST("/intentions", controllers.CreateIntention)

		// Google Classroom roster routes
		auth.GET("/classroom/courses", controllers.GetClassroomCourses)
		auth.POST("/classroom/courses/:course_id/import", controllers.ImportClassroomCourse)
		auth.POST("/classroom/saved/:course_id/load", controllers.LoadSavedClass)

		//admin only routes
		admin := auth.Group("/")
		admin.Use(middlewares.CheckAdmin)
		admin.Use(middlewares.RateLimitMiddleware(5, 5, getKey))
		{
			admin.POST("/users", controllers.UserSignup)
			admin.DELETE("/intentions/:intention_id", controllers.DeleteIntention)
		}
	}

	if err := router.Run(); err != nil {
		log.Fatal(err)
	}
}
