package login

// LoginRequest 登录请求；JSON 使用 email，OAuth2 表单使用 username 字段携带邮箱
type LoginRequest struct {
	Email    string `json:"email" form:"username" binding:"required" example:"ana@example.com"` // 邮箱
	Password string `json:"password" form:"password" binding:"required" example:"pw123456"`     // 密码
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."` // JWT 访问令牌
	TokenType   string `json:"token_type" example:"bearer"`                                    // 固定为 bearer
}
