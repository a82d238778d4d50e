package register

import userModel "terminal-terrace/exercise-service/internal/model/user"

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required" example:"ana"`          // 用户名
	Email    string `json:"email" binding:"required" example:"ana@example.com"` // 邮箱
	Password string `json:"password" binding:"required" example:"pw123456"`     // 密码
}

// RegisterResponse 注册成功后返回的公开用户信息
type RegisterResponse = userModel.PublicUser
