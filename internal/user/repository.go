package user

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "terminal-terrace/exercise-service/internal/model/user"
)

// UserRepository 用户数据访问层
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库实例
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create 写入新用户
func (r *UserRepository) Create(ctx context.Context, u *userModel.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// FindByEmail 按邮箱精确查找，不存在时返回 gorm.ErrRecordNotFound
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*userModel.User, error) {
	var u userModel.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByID 按主键查找
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*userModel.User, error) {
	var u userModel.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByUsernameOrEmail 注册前的唯一性检查
func (r *UserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) ([]userModel.User, error) {
	var users []userModel.User
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", username, email).
		Limit(2).
		Find(&users).Error
	return users, err
}

// ExistsBy 检查某一列是否已有该值
func (r *UserRepository) ExistsBy(ctx context.Context, column, value string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&userModel.User{}).
		Where(column+" = ?", value).
		Count(&count).Error
	return count > 0, err
}
