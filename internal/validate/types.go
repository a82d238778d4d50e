package validate

// EmailQuery GET /validate/email 查询参数
type EmailQuery struct {
	Email string `form:"email" binding:"required,email"`
}

// UsernameQuery GET /validate/username 查询参数
type UsernameQuery struct {
	Username string `form:"username" binding:"required,min=3,max=50"`
}

// UniquenessResponse 唯一性检查结果
type UniquenessResponse struct {
	Field    string `json:"field" example:"email"`
	Value    string `json:"value" example:"ana@example.com"`
	IsUnique bool   `json:"is_unique" example:"true"`
	Message  string `json:"message" example:"email is available"`
}
