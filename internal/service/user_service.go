package service

import (
	"context"
	"strings"

	apperrors "github.com/gamevault/catalog/internal/errors"
	"github.com/gamevault/catalog/internal/models"
	"github.com/gamevault/catalog/internal/repository"
	"go.uber.org/zap"
)

// userService 用户服务实现
type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log,
	}
}

// Create 创建用户，姓名和邮箱为必填项
func (s *userService) Create(ctx context.Context, user *models.User) error {
	if strings.TrimSpace(user.FullName) == "" {
		return apperrors.New(apperrors.ErrValidation, "用户姓名不能为空")
	}
	if strings.TrimSpace(user.Email) == "" {
		return apperrors.New(apperrors.ErrValidation, "用户邮箱不能为空")
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.log.Error("创建用户失败", zap.Error(err), zap.String("email", user.Email))
		return err
	}

	s.log.Info("用户已创建", zap.Uint("id", user.ID), zap.String("full_name", user.FullName))
	return nil
}

// GetAll 获取所有用户
func (s *userService) GetAll(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.GetAll(ctx)
}

// GetByID 根据ID获取用户，不存在时返回nil
func (s *userService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// Delete 删除用户（幂等）
func (s *userService) Delete(ctx context.Context, id uint) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		s.log.Error("删除用户失败", zap.Error(err), zap.Uint("id", id))
		return err
	}
	return nil
}

// Remove 是Delete的同义词，为兼容旧调用方保留
func (s *userService) Remove(ctx context.Context, id uint) error {
	return s.Delete(ctx, id)
}
