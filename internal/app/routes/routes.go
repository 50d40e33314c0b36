package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ekurt/studentdir/internal/app/controllers"
)

// SetupRouter configures all application routes.
func SetupRouter(
	router *gin.Engine,
	studentController *controllers.StudentController,
	healthController *controllers.HealthController,
) {
	// API group, mirroring the /api prefix the admin UI calls.
	api := router.Group("/api")

	students := api.Group("/students")
	{
		students.GET("", studentController.ListStudents)
		students.GET("/:id", studentController.GetStudentByID)
		students.POST("", studentController.CreateStudent)
		students.PUT("/:id", studentController.UpdateStudent)
		students.DELETE("/:id", studentController.DeleteStudent)
	}

	// Operational endpoints live at the root, outside the API prefix.
	router.GET("/health", healthController.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
