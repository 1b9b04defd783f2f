package api

import (
	"github.com/gin-gonic/gin"
	"github.com/gamevault/catalog/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Router API路由器
type Router struct {
	engine         *gin.Engine
	db             *gorm.DB
	services       *service.Services
	gameHandler    *GameHandler
	userHandler    *UserHandler
	commentHandler *CommentHandler
	log            *zap.Logger
}

// NewRouter 创建路由器
func NewRouter(db *gorm.DB, log *zap.Logger) *Router {
	// 创建Gin引擎
	engine := gin.New()

	// 全局中间件
	engine.Use(gin.Recovery())
	engine.Use(RequestID())
	engine.Use(AccessLog(log))

	// 创建服务
	services := service.NewServices(db, log)

	router := &Router{
		engine:         engine,
		db:             db,
		services:       services,
		gameHandler:    NewGameHandler(services.Game, services.Comment, log),
		userHandler:    NewUserHandler(services.User, log),
		commentHandler: NewCommentHandler(services.Comment, log),
		log:            log,
	}

	// 设置路由
	router.setupRoutes()

	return router
}

// setupRoutes 设置路由
func (r *Router) setupRoutes() {
	// 健康检查
	r.engine.GET("/health", r.healthCheck)

	// API路由组
	api := r.engine.Group("/api")
	{
		// 游戏相关路由
		games := api.Group("/games")
		{
			games.GET("", r.gameHandler.List)
			games.POST("", r.gameHandler.Create)
			games.GET("/ranking", r.gameHandler.Ranking)
			games.GET("/:id", r.gameHandler.Get)
			games.PUT("/:id", r.gameHandler.Update)
			games.DELETE("/:id", r.gameHandler.Delete)
			games.POST("/:id/ratings", r.gameHandler.Rate)
			games.GET("/:id/comments", r.gameHandler.ListComments)
			games.POST("/:id/comments", r.gameHandler.AddComment)
		}

		// 用户相关路由
		users := api.Group("/users")
		{
			users.GET("", r.userHandler.List)
			users.POST("", r.userHandler.Create)
			users.GET("/:id", r.userHandler.Get)
			users.DELETE("/:id", r.userHandler.Delete)
		}

		// 评论相关路由（读写挂在游戏下，删除单独暴露）
		comments := api.Group("/comments")
		{
			comments.DELETE("/:id", r.commentHandler.Delete)
		}
	}

	// 404处理
	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"code":    "NOT_FOUND",
			"message": "接口不存在",
		})
	})
}

// healthCheck 健康检查
func (r *Router) healthCheck(c *gin.Context) {
	sqlDB, err := r.db.DB()
	if err != nil {
		c.JSON(500, gin.H{
			"status":  "unhealthy",
			"message": "数据库连接失败",
		})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		c.JSON(500, gin.H{
			"status":  "unhealthy",
			"message": "数据库ping失败",
		})
		return
	}

	c.JSON(200, gin.H{
		"status":  "healthy",
		"message": "服务运行正常",
	})
}

// Run 运行服务器
func (r *Router) Run(addr string) error {
	r.log.Info("Starting API server", zap.String("address", addr))
	return r.engine.Run(addr)
}

// GetEngine 获取Gin引擎（用于测试）
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
