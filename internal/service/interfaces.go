package service

import (
	"context"

	"github.com/gamevault/catalog/internal/models"
)

// GameService 游戏领域服务接口
// UI等外部协作方只允许通过领域服务访问存储，不直接触达仓储
type GameService interface {
	Create(ctx context.Context, game *models.Game) error
	GetAll(ctx context.Context) ([]*models.Game, error)
	GetByID(ctx context.Context, id uint) (*models.Game, error)
	Update(ctx context.Context, id uint, changes map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	ByCategory(ctx context.Context, category string) ([]*models.Game, error)
	ByUser(ctx context.Context, userID uint) ([]*models.Game, error)
	Rate(ctx context.Context, gameID uint, rating models.Rating) error
	AverageRating(game *models.Game) float64
	Ranking(ctx context.Context) ([]*models.Game, error)
}

// UserService 用户领域服务接口
type UserService interface {
	Create(ctx context.Context, user *models.User) error
	GetAll(ctx context.Context) ([]*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	Delete(ctx context.Context, id uint) error
	// Remove 是Delete的同义词，为兼容旧调用方保留
	Remove(ctx context.Context, id uint) error
}

// CommentService 评论领域服务接口
type CommentService interface {
	Add(ctx context.Context, comment *models.Comment) error
	ByGame(ctx context.Context, gameID uint) ([]*models.Comment, error)
	Delete(ctx context.Context, id uint) error
}
