package routes

import (
	"os"
	"strings"

	"studyhub-backend/config"
	"studyhub-backend/controllers"
	"studyhub-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/verify", controllers.Verify)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Area routes
		areas := api.Group("/areas")
		{
			areas.GET("", controllers.GetAreas)
			areas.POST("", controllers.CreateArea)
			areas.PUT("/:id", controllers.UpdateArea)
			areas.DELETE("/:id", controllers.DeleteArea)
		}

		// Task routes
		tasks := api.Group("/tasks")
		{
			tasks.GET("", controllers.GetTasks)
			tasks.GET("/area/:areaId", controllers.GetTasksByArea)
			tasks.POST("", controllers.CreateTask)
			tasks.PUT("/:id/toggle", controllers.ToggleTask)
			tasks.DELETE("/:id", controllers.DeleteTask)
		}

		// Exam routes
		exams := api.Group("/exams")
		{
			exams.GET("", controllers.GetExams)
			exams.GET("/upcoming", controllers.GetUpcomingExams)
			exams.POST("", controllers.CreateExam)
			exams.PUT("/:id", controllers.UpdateExam)
			exams.DELETE("/:id", controllers.DeleteExam)
		}

		// Dashboard routes
		api.GET("/dashboard/stats", controllers.GetDashboardStats)

		// Settings routes
		profile := api.Group("/profile")
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("", controllers.UpdateProfile)
			profile.PUT("/password", controllers.ChangePassword)
			profile.PUT("/notifications", controllers.UpdateNotificationSettings)
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(controllers.AdminMiddleware())
		{
			admin.GET("/users", controllers.GetUsers)
			admin.DELETE("/users/:id", controllers.DeleteUser)
		}
	}

	return r
}
