package validate

import (
	"context"

	"github.com/gin-gonic/gin"

	"terminal-terrace/exercise-service/internal/dto"
	"terminal-terrace/exercise-service/internal/user"
)

type ValidateHandler struct {
	users *user.UserService
}

// CheckEmail 检查邮箱是否可用
// @Summary 检查邮箱是否已注册
// @Tags 校验
// @Produce json
// @Param email query string true "邮箱"
// @Success 200 {object} UniquenessResponse
// @Router /validate/email [get]
func (h *ValidateHandler) CheckEmail(c *gin.Context) {
	var q EmailQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	h.respond(c, "email", q.Email, h.users.IsEmailTaken)
}

// CheckUsername 检查用户名是否可用
// @Summary 检查用户名是否已占用
// @Tags 校验
// @Produce json
// @Param username query string true "用户名"
// @Success 200 {object} UniquenessResponse
// @Router /validate/username [get]
func (h *ValidateHandler) CheckUsername(c *gin.Context) {
	var q UsernameQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	h.respond(c, "username", q.Username, h.users.IsUsernameTaken)
}

func (h *ValidateHandler) respond(c *gin.Context, field, value string, taken func(context.Context, string) (bool, error)) {
	exists, err := taken(c.Request.Context(), value)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}

	message := field + " is available"
	if exists {
		message = field + " is already taken"
	}
	dto.SuccessResponse(c, UniquenessResponse{
		Field:    field,
		Value:    value,
		IsUnique: !exists,
		Message:  message,
	})
}
