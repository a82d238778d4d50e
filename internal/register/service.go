package register

import (
	"context"
	"regexp"

	"terminal-terrace/exercise-service/internal/user"
	"terminal-terrace/exercise-service/pkg/response"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

type RegisterService struct {
	users *user.UserService
}

// Register 校验参数后创建用户
func (s *RegisterService) Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	if err := s.validateRequest(req); err != nil {
		return RegisterResponse{}, err
	}

	return s.users.Register(ctx, user.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
}

// 参数校验
func (s *RegisterService) validateRequest(req RegisterRequest) *response.BusinessError {
	// 校验用户名
	if req.Username == "" {
		return invalid("username is required")
	}
	if len(req.Username) < 3 || len(req.Username) > 50 {
		return invalid("username must be between 3 and 50 characters")
	}
	if !usernameRegex.MatchString(req.Username) {
		return invalid("username may only contain letters, digits and underscores")
	}

	// 校验邮箱
	if req.Email == "" {
		return invalid("email is required")
	}
	if len(req.Email) > 100 || !emailRegex.MatchString(req.Email) {
		return invalid("email is not a valid address")
	}

	// 校验密码
	if req.Password == "" {
		return invalid("password is required")
	}
	if len(req.Password) < 6 || len(req.Password) > 100 {
		return invalid("password must be between 6 and 100 characters")
	}

	return nil
}

func invalid(msg string) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.InvalidParameter),
		response.WithErrorMessage(msg),
	)
}
