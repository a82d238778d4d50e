package login

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"terminal-terrace/exercise-service/internal/dto"
)

type LoginHandler struct {
	service   *LoginService
	cookieTTL time.Duration
}

// handle 登录并签发访问令牌
// @Summary 登录
// @Tags 认证
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param body body LoginRequest true "登录信息"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *LoginHandler) handle(c *gin.Context) {
	// JSON 与 OAuth2 表单按 Content-Type 绑定
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		c.Header("WWW-Authenticate", "Bearer")
		dto.ErrorResponse(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("access_token", result.AccessToken, int(h.cookieTTL.Seconds()), "/", "", false, true)
	dto.SuccessResponse(c, result)
}
