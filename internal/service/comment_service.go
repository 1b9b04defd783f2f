package service

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/gamevault/catalog/internal/errors"
	"github.com/gamevault/catalog/internal/models"
	"github.com/gamevault/catalog/internal/repository"
	"go.uber.org/zap"
)

// commentService 评论服务实现
type commentService struct {
	commentRepo repository.CommentRepository
	log         *zap.Logger
}

// NewCommentService 创建评论服务
func NewCommentService(commentRepo repository.CommentRepository, log *zap.Logger) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		log:         log,
	}
}

// Add 新增评论
// Date为零值时取当前时间作为排序键
func (s *commentService) Add(ctx context.Context, comment *models.Comment) error {
	if comment.GameID == 0 {
		return apperrors.New(apperrors.ErrInvalidParam, "评论缺少关联的游戏ID")
	}
	if comment.UserID == 0 {
		return apperrors.New(apperrors.ErrInvalidParam, "评论缺少提交用户ID")
	}
	if strings.TrimSpace(comment.Text) == "" {
		return apperrors.New(apperrors.ErrEmptyComment)
	}

	if comment.Date.IsZero() {
		comment.Date = time.Now()
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		s.log.Error("创建评论失败", zap.Error(err), zap.Uint("game_id", comment.GameID))
		return err
	}

	s.log.Info("评论已创建", zap.Uint("id", comment.ID), zap.Uint("game_id", comment.GameID))
	return nil
}

// ByGame 获取指定游戏的评论，按时间升序（阅读顺序）
func (s *commentService) ByGame(ctx context.Context, gameID uint) ([]*models.Comment, error) {
	return s.commentRepo.FindByGame(ctx, gameID)
}

// Delete 删除评论（幂等）
func (s *commentService) Delete(ctx context.Context, id uint) error {
	if err := s.commentRepo.Delete(ctx, id); err != nil {
		s.log.Error("删除评论失败", zap.Error(err), zap.Uint("id", id))
		return err
	}
	return nil
}
