package service

import (
	"context"
	"math"
	"sort"
	"strings"

	apperrors "github.com/gamevault/catalog/internal/errors"
	"github.com/gamevault/catalog/internal/models"
	"github.com/gamevault/catalog/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// gameService 游戏服务实现
type gameService struct {
	gameRepo    repository.GameRepository
	commentRepo repository.CommentRepository
	log         *zap.Logger
}

// NewGameService 创建游戏服务
func NewGameService(
	gameRepo repository.GameRepository,
	commentRepo repository.CommentRepository,
	log *zap.Logger,
) GameService {
	return &gameService{
		gameRepo:    gameRepo,
		commentRepo: commentRepo,
		log:         log,
	}
}

// Create 创建游戏
func (s *gameService) Create(ctx context.Context, game *models.Game) error {
	if strings.TrimSpace(game.Name) == "" {
		return apperrors.New(apperrors.ErrValidation, "游戏名称不能为空")
	}
	if !models.IsValidCategory(game.Category) {
		return apperrors.Newf(apperrors.ErrInvalidCategory, "分类 %q 不在允许范围内", game.Category)
	}
	for _, rating := range game.Ratings {
		if rating.Value < 1 || rating.Value > 5 {
			return apperrors.Newf(apperrors.ErrInvalidRating, "评分值 %d 超出范围 [1,5]", rating.Value)
		}
	}

	if err := s.gameRepo.Create(ctx, game); err != nil {
		s.log.Error("创建游戏失败", zap.Error(err), zap.String("name", game.Name))
		return err
	}

	s.log.Info("游戏已创建", zap.Uint("id", game.ID), zap.String("name", game.Name))
	return nil
}

// GetAll 获取所有游戏（倒序，最新创建的在前）
func (s *gameService) GetAll(ctx context.Context) ([]*models.Game, error) {
	return s.gameRepo.GetAllDesc(ctx)
}

// GetByID 根据ID获取游戏，不存在时返回nil
func (s *gameService) GetByID(ctx context.Context, id uint) (*models.Game, error) {
	return s.gameRepo.FindByID(ctx, id)
}

// Update 部分更新游戏
func (s *gameService) Update(ctx context.Context, id uint, changes map[string]interface{}) error {
	if category, ok := changes["category"].(string); ok {
		if !models.IsValidCategory(category) {
			return apperrors.Newf(apperrors.ErrInvalidCategory, "分类 %q 不在允许范围内", category)
		}
	}

	if err := s.gameRepo.Update(ctx, id, changes); err != nil {
		if !apperrors.IsNotFound(err) {
			s.log.Error("更新游戏失败", zap.Error(err), zap.Uint("id", id))
		}
		return err
	}
	return nil
}

// Delete 删除游戏并级联清理其评论
// 软外键不做存储层约束，孤儿评论在这里通过同一事务内的级联删除避免
func (s *gameService) Delete(ctx context.Context, id uint) error {
	err := s.gameRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.gameRepo.WithTx(tx).(repository.GameRepository).Delete(ctx, id); err != nil {
			return err
		}
		return s.commentRepo.WithTx(tx).(repository.CommentRepository).DeleteByGame(ctx, id)
	})
	if err != nil {
		s.log.Error("删除游戏失败", zap.Error(err), zap.Uint("id", id))
		if _, ok := err.(*apperrors.AppError); ok {
			return err
		}
		return apperrors.Wrap(err, apperrors.ErrTransaction)
	}

	s.log.Info("游戏已删除", zap.Uint("id", id))
	return nil
}

// ByCategory 根据分类查询游戏
func (s *gameService) ByCategory(ctx context.Context, category string) ([]*models.Game, error) {
	return s.gameRepo.FindByCategory(ctx, category)
}

// ByUser 查询关联了指定用户的游戏
// 字符串与数字形式的ID在索引层归一化后等价
func (s *gameService) ByUser(ctx context.Context, userID uint) ([]*models.Game, error) {
	return s.gameRepo.FindByUser(ctx, userID)
}

// Rate 为游戏追加一条评分（原子操作）
func (s *gameService) Rate(ctx context.Context, gameID uint, rating models.Rating) error {
	if rating.Value < 1 || rating.Value > 5 {
		return apperrors.Newf(apperrors.ErrInvalidRating, "评分值 %d 超出范围 [1,5]", rating.Value)
	}

	if err := s.gameRepo.AppendRating(ctx, gameID, rating); err != nil {
		if !apperrors.IsNotFound(err) {
			s.log.Error("追加评分失败", zap.Error(err), zap.Uint("game_id", gameID))
		}
		return err
	}

	s.log.Info("评分已记录", zap.Uint("game_id", gameID), zap.Int("value", rating.Value))
	return nil
}

// AverageRating 计算游戏的平均评分
// 无评分时返回0，否则取算术平均并保留两位小数
func (s *gameService) AverageRating(game *models.Game) float64 {
	if game == nil || len(game.Ratings) == 0 {
		return 0
	}

	sum := 0
	for _, rating := range game.Ratings {
		sum += rating.Value
	}

	avg := float64(sum) / float64(len(game.Ratings))
	return math.Round(avg*100) / 100
}

// Ranking 按平均评分倒序排列所有游戏
// 稳定排序：平均分相同的游戏保持插入顺序
func (s *gameService) Ranking(ctx context.Context) ([]*models.Game, error) {
	games, err := s.gameRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(games, func(i, j int) bool {
		return s.AverageRating(games[i]) > s.AverageRating(games[j])
	})
	return games, nil
}
