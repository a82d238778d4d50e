package login

import (
	"time"

	"github.com/gin-gonic/gin"

	"terminal-terrace/exercise-service/internal/auth"
)

func RegisterRoutes(r *gin.RouterGroup, authService *auth.AuthService, tokenTTL time.Duration) {
	h := &LoginHandler{
		service:   NewLoginService(authService),
		cookieTTL: tokenTTL,
	}
	r.POST("/login", h.handle)
}
