package repository

import (
	"context"
	"errors"

	apperrors "github.com/gamevault/catalog/internal/errors"
	"github.com/gamevault/catalog/internal/models"
	"gorm.io/gorm"
)

// CommentRepository 评论仓储接口
type CommentRepository interface {
	BaseRepository
	Create(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
	DeleteByGame(ctx context.Context, gameID uint) error
	FindByID(ctx context.Context, id uint) (*models.Comment, error)
	FindByGame(ctx context.Context, gameID uint) ([]*models.Comment, error)
}

// commentRepo 评论仓储实现
type commentRepo struct {
	*BaseRepo
}

// NewCommentRepository 创建评论仓储
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepo{
		BaseRepo: &BaseRepo{db: db},
	}
}

// Create 创建评论
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return apperrors.Wrap(err, apperrors.ErrDatabaseInsert)
	}
	return nil
}

// Delete 删除评论（幂等）
func (r *commentRepo) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error; err != nil {
		return apperrors.Wrap(err, apperrors.ErrDatabaseDelete)
	}
	return nil
}

// DeleteByGame 删除指定游戏的全部评论
// 游戏删除时的级联清理使用，避免产生孤儿评论
func (r *commentRepo) DeleteByGame(ctx context.Context, gameID uint) error {
	if err := r.db.WithContext(ctx).Where("game_id = ?", gameID).Delete(&models.Comment{}).Error; err != nil {
		return apperrors.Wrap(err, apperrors.ErrDatabaseDelete)
	}
	return nil
}

// FindByID 根据ID查找评论，不存在时返回nil而非错误
func (r *commentRepo) FindByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, apperrors.ErrDatabaseQuery)
	}
	return &comment, nil
}

// FindByGame 查找指定游戏的评论，按时间升序返回（阅读顺序，与插入顺序无关）
func (r *commentRepo) FindByGame(ctx context.Context, gameID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("date ASC").
		Find(&comments).Error
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrDatabaseQuery)
	}
	return comments, nil
}

// WithTx 使用事务
func (r *commentRepo) WithTx(tx *gorm.DB) BaseRepository {
	return &commentRepo{
		BaseRepo: &BaseRepo{db: tx},
	}
}
