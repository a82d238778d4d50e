package register

import (
	"github.com/gin-gonic/gin"

	"terminal-terrace/exercise-service/internal/user"
)

func RegisterRoutes(r *gin.RouterGroup, users *user.UserService) {
	h := &RegisterHandler{
		service: &RegisterService{users: users},
	}
	r.POST("/register", h.handle)
}
