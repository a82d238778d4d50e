package me

import (
	"github.com/gin-gonic/gin"

	"terminal-terrace/exercise-service/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, resolver middleware.PrincipalResolver) {
	handler := &MeHandler{}

	// 需要认证的接口
	r.GET("/me", middleware.JWTAuth(resolver), handler.GetCurrentUser)
}
