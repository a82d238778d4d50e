package me

import (
	"github.com/gin-gonic/gin"

	"terminal-terrace/exercise-service/internal/dto"
	"terminal-terrace/exercise-service/internal/middleware"
	"terminal-terrace/exercise-service/pkg/response"
)

type MeHandler struct{}

// GetCurrentUser 获取当前登录用户信息
// @Summary 获取当前用户信息
// @Description 从 Authorization 头或 access_token cookie 解析当前登录用户
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserInfoResponse
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *MeHandler) GetCurrentUser(c *gin.Context) {
	// 从上下文获取用户信息（由中间件设置）
	principal, ok := middleware.CurrentUser(c)
	if !ok {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Unauthorized),
			response.WithErrorMessage("Not authenticated"),
		))
		return
	}

	dto.SuccessResponse(c, UserInfoResponse(principal.Public()))
}
