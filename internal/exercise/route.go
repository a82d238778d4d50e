package exercise

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"terminal-terrace/exercise-service/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, db *gorm.DB, resolver middleware.PrincipalResolver) {
	h := NewExerciseHandler(NewExerciseService(db))

	exercises := r.Group("/exercises")
	exercises.Use(middleware.JWTAuth(resolver))
	{
		exercises.GET("", h.ListExercises)
		exercises.POST("", h.CreateExercise)
		exercises.GET("/:id", h.GetExercise)
		exercises.PUT("/:id", h.UpdateExercise)
		exercises.PATCH("/:id", h.UpdateExercise)
		exercises.DELETE("/:id", h.DeleteExercise)
		exercises.POST("/:id/sentences", h.AddSentences)
	}
}
