package database

import (
	"github.com/gamevault/catalog/internal/config"
	apperrors "github.com/gamevault/catalog/internal/errors"
	"github.com/gamevault/catalog/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AutoMigrate 自动迁移数据库表结构
// 模式版本固定为单一版本，只做结构对齐，不做数据迁移
func AutoMigrate(db *gorm.DB, cfg *config.DatabaseConfig, log *zap.Logger) error {
	if db == nil {
		return apperrors.New(apperrors.ErrDatabaseConnect, "数据库未初始化")
	}

	// 文件型SQLite需要迁移锁，避免多个进程同时迁移
	if isFileBacked(cfg) {
		lockFile, err := acquireMigrationLock(cfg.DSN, log)
		if err != nil {
			log.Error("无法获取迁移锁", zap.Error(err))
			return apperrors.Wrap(err, apperrors.ErrDatabaseConnect, "获取迁移锁失败")
		}
		defer releaseMigrationLock(lockFile, log)
	}

	// 三张集合表：games、users、comments
	migrationModels := []interface{}{
		&models.Game{},
		&models.User{},
		&models.Comment{},
	}

	for _, model := range migrationModels {
		if err := db.AutoMigrate(model); err != nil {
			return apperrors.Wrapf(err, apperrors.ErrDataIntegrity, "迁移模型 %T 失败", model)
		}
	}

	log.Info("数据库迁移完成", zap.Int("models", len(migrationModels)))
	return nil
}

// isFileBacked 判断是否为文件型SQLite数据库
func isFileBacked(cfg *config.DatabaseConfig) bool {
	if cfg.Driver != "sqlite" && cfg.Driver != "sqlite3" {
		return false
	}
	return cfg.DSN != ":memory:" && cfg.DSN != "file::memory:?cache=shared"
}
