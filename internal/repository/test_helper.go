package repository

import (
	"testing"
	"time"

	"github.com/gamevault/catalog/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB 为测试套件设置测试数据库
// 使用内存数据库进行测试（更快，不需要文件系统，在所有环境中都能工作）
func SetupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(err)
	}

	// 内存数据库按连接隔离，限制为单连接避免连接池拿到空库
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	// 自动迁移所有模型
	err = db.AutoMigrate(
		&models.Game{},
		&models.User{},
		&models.Comment{},
	)
	if err != nil {
		panic(err)
	}

	return db
}

// CleanupTestDB 清理测试数据库
func CleanupTestDB(db *gorm.DB) {
	sqlDB, _ := db.DB()
	if sqlDB != nil {
		sqlDB.Close()
	}
}

// CreateTestGame 创建测试游戏
func CreateTestGame(name, category string) *models.Game {
	return &models.Game{
		Name:        name,
		Description: "测试游戏: " + name,
		StartDate:   "2024-01-01",
		Category:    category,
		Ratings:     models.RatingList{},
		UserIDs:     models.IDList{},
	}
}

// CreateTestUser 创建测试用户
func CreateTestUser(fullName, email string) *models.User {
	return &models.User{
		FullName: fullName,
		Email:    email,
	}
}

// CreateTestComment 创建测试评论
func CreateTestComment(gameID, userID uint, text string, date time.Time) *models.Comment {
	return &models.Comment{
		GameID: gameID,
		UserID: userID,
		Text:   text,
		Date:   date,
	}
}

// SeedTestData 创建测试数据
func SeedTestData(t *testing.T, db *gorm.DB) {
	users := []models.User{
		{FullName: "测试用户1", Email: "test1@example.com"},
		{FullName: "测试用户2", Email: "test2@example.com"},
	}
	err := db.Create(&users).Error
	require.NoError(t, err)

	games := []models.Game{
		{
			Name:      "测试游戏1",
			StartDate: "2024-01-01",
			Category:  models.CategoryRPG,
			Ratings:   models.RatingList{{Value: 4, UserID: users[0].ID}},
			UserIDs:   models.IDList{users[0].ID},
		},
		{
			Name:      "测试游戏2",
			StartDate: "2024-02-01",
			Category:  models.CategoryStrategy,
			Ratings:   models.RatingList{},
			UserIDs:   models.IDList{users[0].ID, users[1].ID},
		},
	}
	err = db.Create(&games).Error
	require.NoError(t, err)
}
