package validate

import (
	"github.com/gin-gonic/gin"

	"terminal-terrace/exercise-service/internal/user"
)

func RegisterRoutes(r *gin.RouterGroup, users *user.UserService) {
	h := &ValidateHandler{users: users}
	r.GET("/email", h.CheckEmail)
	r.GET("/username", h.CheckUsername)
}
