package auth

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	userModel "terminal-terrace/exercise-service/internal/model/user"
	"terminal-terrace/exercise-service/pkg/response"
)

// UserLookup 认证所需的用户查询；不存在时返回 (nil, nil)
type UserLookup interface {
	FindByEmail(ctx context.Context, email string) (*userModel.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*userModel.User, error)
}

// dummyHash 用户不存在时仍做一次比较，使两种失败耗时相近
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password"), bcrypt.DefaultCost)

type AuthService struct {
	users  UserLookup
	tokens *TokenManager
	ttl    time.Duration
}

func NewAuthService(users UserLookup, tokens *TokenManager, ttl time.Duration) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		ttl:    ttl,
	}
}

// Authenticate 校验邮箱和密码；用户不存在与密码错误都返回 (nil, nil)
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*userModel.User, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, nil
	}
	return u, nil
}

// IssueToken 使用配置的有效期签发访问令牌
func (s *AuthService) IssueToken(userID uuid.UUID) (string, error) {
	return s.IssueTokenWithTTL(userID, s.ttl)
}

func (s *AuthService) IssueTokenWithTTL(userID uuid.UUID, ttl time.Duration) (string, error) {
	token, err := s.tokens.Generate(userID, ttl)
	if err != nil {
		return "", response.NewBusinessError(
			response.WithErrorCode(response.Internal),
			response.WithErrorMessage("failed to issue token"),
			response.WithError(err),
		)
	}
	return token, nil
}

// ResolvePrincipal 由令牌解析出当前用户；任何失败都视为未认证
func (s *AuthService) ResolvePrincipal(ctx context.Context, token string) (*userModel.User, error) {
	userID, err := s.tokens.Parse(token)
	if err != nil {
		return nil, unauthorized(err)
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		log.Printf("[ResolvePrincipal] token subject %s does not exist", userID)
		return nil, unauthorized(errors.New("subject not found"))
	}
	return u, nil
}

func unauthorized(err error) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.Unauthorized),
		response.WithErrorMessage("Could not validate credentials"),
		response.WithError(err),
	)
}
