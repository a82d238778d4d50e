package register

import (
	"github.com/gin-gonic/gin"

	"terminal-terrace/exercise-service/internal/dto"
)

type RegisterHandler struct {
	service *RegisterService
}

// handle 注册新用户
// @Summary 注册
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "注册信息"
// @Success 201 {object} RegisterResponse
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register [post]
func (h *RegisterHandler) handle(c *gin.Context) {
	// 解析参数
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	// 调用注册服务
	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}

	dto.CreatedResponse(c, result)
}
