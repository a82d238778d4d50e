package login

import (
	"context"
	"log"

	"terminal-terrace/exercise-service/internal/auth"
	"terminal-terrace/exercise-service/pkg/response"
)

const tokenTypeBearer = "bearer"

type LoginService struct {
	auth *auth.AuthService
}

func NewLoginService(authService *auth.AuthService) *LoginService {
	return &LoginService{auth: authService}
}

// Login 邮箱密码登录；用户不存在与密码错误返回同一个错误
func (s *LoginService) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	u, err := s.auth.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return LoginResponse{}, err
	}
	if u == nil {
		log.Printf("[Login] rejected credentials for %q", req.Email)
		return LoginResponse{}, response.NewBusinessError(
			response.WithErrorCode(response.Unauthorized),
			response.WithErrorMessage("Incorrect email or password"),
		)
	}

	token, err := s.auth.IssueToken(u.ID)
	if err != nil {
		return LoginResponse{}, err
	}

	return LoginResponse{
		AccessToken: token,
		TokenType:   tokenTypeBearer,
	}, nil
}
