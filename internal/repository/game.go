package repository

import (
	"context"
	"errors"

	apperrors "github.com/gamevault/catalog/internal/errors"
	"github.com/gamevault/catalog/internal/models"
	"gorm.io/gorm"
)

// GameRepository 游戏仓储接口
type GameRepository interface {
	BaseRepository
	Create(ctx context.Context, game *models.Game) error
	Update(ctx context.Context, id uint, changes map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Game, error)
	GetAll(ctx context.Context) ([]*models.Game, error)
	GetAllDesc(ctx context.Context) ([]*models.Game, error)
	FindByCategory(ctx context.Context, category string) ([]*models.Game, error)
	FindByUser(ctx context.Context, userID uint) ([]*models.Game, error)
	AppendRating(ctx context.Context, id uint, rating models.Rating) error
}

// gameRepo 游戏仓储实现
type gameRepo struct {
	*BaseRepo
}

// NewGameRepository 创建游戏仓储
func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepo{
		BaseRepo: &BaseRepo{db: db},
	}
}

// Create 创建游戏，ID由存储分配（严格递增，删除后不复用）
func (r *gameRepo) Create(ctx context.Context, game *models.Game) error {
	if game.Ratings == nil {
		game.Ratings = models.RatingList{}
	}
	if game.UserIDs == nil {
		game.UserIDs = models.IDList{}
	}
	if err := r.db.WithContext(ctx).Create(game).Error; err != nil {
		return apperrors.Wrap(err, apperrors.ErrDatabaseInsert)
	}
	return nil
}

// Update 部分更新，只合并给定的字段，其余字段保持不变
func (r *gameRepo) Update(ctx context.Context, id uint, changes map[string]interface{}) error {
	var game models.Game
	if err := r.db.WithContext(ctx).First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Newf(apperrors.ErrGameNotFound, "ID为%d的游戏不存在", id)
		}
		return apperrors.Wrap(err, apperrors.ErrDatabaseQuery)
	}

	if len(changes) == 0 {
		return nil
	}

	if err := r.db.WithContext(ctx).Model(&models.Game{}).Where("id = ?", id).Updates(changes).Error; err != nil {
		return apperrors.Wrap(err, apperrors.ErrDatabaseUpdate)
	}
	return nil
}

// Delete 删除游戏，删除不存在的ID视为成功（幂等）
func (r *gameRepo) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Game{}, id).Error; err != nil {
		return apperrors.Wrap(err, apperrors.ErrDatabaseDelete)
	}
	return nil
}

// FindByID 根据ID查找游戏，不存在时返回nil而非错误
func (r *gameRepo) FindByID(ctx context.Context, id uint) (*models.Game, error) {
	var game models.Game
	err := r.db.WithContext(ctx).First(&game, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, apperrors.ErrDatabaseQuery)
	}
	return &game, nil
}

// GetAll 获取所有游戏（插入顺序）
func (r *gameRepo) GetAll(ctx context.Context) ([]*models.Game, error) {
	var games []*models.Game
	err := r.db.WithContext(ctx).Order("id ASC").Find(&games).Error
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrDatabaseQuery)
	}
	return games, nil
}

// GetAllDesc 获取所有游戏（倒序，最新插入的在前）
func (r *gameRepo) GetAllDesc(ctx context.Context) ([]*models.Game, error) {
	var games []*models.Game
	err := r.db.WithContext(ctx).Order("id DESC").Find(&games).Error
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrDatabaseQuery)
	}
	return games, nil
}

// FindByCategory 根据分类查找游戏
func (r *gameRepo) FindByCategory(ctx context.Context, category string) ([]*models.Game, error) {
	var games []*models.Game
	err := r.db.WithContext(ctx).Where("category = ?", category).Order("id ASC").Find(&games).Error
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrDatabaseQuery)
	}
	return games, nil
}

// FindByUser 查找关联了指定用户的游戏
// 成员判断走IDList的数值归一化，字符串形式存储的ID与数字等价
func (r *gameRepo) FindByUser(ctx context.Context, userID uint) ([]*models.Game, error) {
	games, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*models.Game, 0)
	for _, game := range games {
		if game.HasUser(userID) {
			matched = append(matched, game)
		}
	}
	return matched, nil
}

// AppendRating 原子追加评分
// 读取和写入在同一事务内完成，消除读-改-写的丢失更新窗口
func (r *gameRepo) AppendRating(ctx context.Context, id uint, rating models.Rating) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var game models.Game
		if err := tx.First(&game, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.Newf(apperrors.ErrGameNotFound, "ID为%d的游戏不存在", id)
			}
			return apperrors.Wrap(err, apperrors.ErrDatabaseQuery)
		}

		ratings := append(game.Ratings, rating)
		if err := tx.Model(&models.Game{}).Where("id = ?", id).Update("ratings", ratings).Error; err != nil {
			return apperrors.Wrap(err, apperrors.ErrDatabaseUpdate)
		}
		return nil
	})
	if err != nil {
		if _, ok := err.(*apperrors.AppError); ok {
			return err
		}
		return apperrors.Wrap(err, apperrors.ErrTransaction)
	}
	return nil
}

// WithTx 使用事务
func (r *gameRepo) WithTx(tx *gorm.DB) BaseRepository {
	return &gameRepo{
		BaseRepo: &BaseRepo{db: tx},
	}
}
