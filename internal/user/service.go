package user

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	userModel "terminal-terrace/exercise-service/internal/model/user"
	"terminal-terrace/exercise-service/pkg/response"
)

// RegisterInput 注册所需的原始数据，格式校验由调用方完成
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// UserService 用户服务层
type UserService struct {
	repo     *UserRepository
	hashCost int
}

// NewUserService 创建用户服务实例
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		repo:     NewUserRepository(db),
		hashCost: bcrypt.DefaultCost,
	}
}

// Register 创建用户；用户名或邮箱已存在时返回 Conflict
func (s *UserService) Register(ctx context.Context, in RegisterInput) (userModel.PublicUser, error) {
	existing, err := s.repo.FindByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return userModel.PublicUser{}, internalError("failed to check existing users", err)
	}
	for _, u := range existing {
		if u.Username == in.Username {
			return userModel.PublicUser{}, conflictError("username already taken")
		}
		if u.Email == in.Email {
			return userModel.PublicUser{}, conflictError("email already registered")
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return userModel.PublicUser{}, internalError("failed to hash password", err)
	}

	now := time.Now().UTC()
	newUser := &userModel.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hashedPassword),
		Role:         userModel.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		// 并发注册时由唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return userModel.PublicUser{}, conflictError("username or email already taken")
		}
		return userModel.PublicUser{}, internalError("failed to create user", err)
	}

	log.Printf("[Register] user created: id=%s username=%s", newUser.ID, newUser.Username)
	return newUser.Public(), nil
}

// FindByEmail 按邮箱查找；不存在时返回 (nil, nil)
func (s *UserService) FindByEmail(ctx context.Context, email string) (*userModel.User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, internalError("failed to load user", err)
	}
	return u, nil
}

// FindByID 按主键查找；不存在时返回 (nil, nil)
func (s *UserService) FindByID(ctx context.Context, id uuid.UUID) (*userModel.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, internalError("failed to load user", err)
	}
	return u, nil
}

// IsEmailTaken 邮箱是否已被注册
func (s *UserService) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	taken, err := s.repo.ExistsBy(ctx, "email", email)
	if err != nil {
		return false, internalError("failed to check email", err)
	}
	return taken, nil
}

// IsUsernameTaken 用户名是否已被占用
func (s *UserService) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	taken, err := s.repo.ExistsBy(ctx, "username", username)
	if err != nil {
		return false, internalError("failed to check username", err)
	}
	return taken, nil
}

func conflictError(msg string) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.Conflict),
		response.WithErrorMessage(msg),
	)
}

func internalError(msg string, err error) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.Internal),
		response.WithErrorMessage(msg),
		response.WithError(err),
	)
}
