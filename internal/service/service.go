package service

import (
	"github.com/gamevault/catalog/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services 服务集合
type Services struct {
	Game    GameService
	User    UserService
	Comment CommentService
}

// NewServices 创建服务集合
// 数据库句柄在进程启动时打开一次，按引用传入各仓储和服务
func NewServices(db *gorm.DB, log *zap.Logger) *Services {
	// 初始化仓储
	gameRepo := repository.NewGameRepository(db)
	userRepo := repository.NewUserRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// 初始化服务
	return &Services{
		Game:    NewGameService(gameRepo, commentRepo, log),
		User:    NewUserService(userRepo, log),
		Comment: NewCommentService(commentRepo, log),
	}
}
