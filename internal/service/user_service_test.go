package service

import (
	"context"
	"testing"

	apperrors "github.com/gamevault/catalog/internal/errors"
	"github.com/gamevault/catalog/internal/models"
	"github.com/gamevault/catalog/internal/repository"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserServiceTestSuite 用户服务测试套件
type UserServiceTestSuite struct {
	suite.Suite
	db    *gorm.DB
	users UserService
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.db = repository.SetupTestDB()
	suite.users = NewServices(suite.db, zap.NewNop()).User
}

func (suite *UserServiceTestSuite) TearDownTest() {
	repository.CleanupTestDB(suite.db)
}

// TestCreate_Validation 测试姓名和邮箱为必填项
func (suite *UserServiceTestSuite) TestCreate_Validation() {
	ctx := context.Background()

	err := suite.users.Create(ctx, &models.User{Email: "a@example.com"})
	suite.Error(err)
	suite.True(apperrors.IsValidation(err))

	err = suite.users.Create(ctx, &models.User{FullName: "Ana"})
	suite.Error(err)
	suite.True(apperrors.IsValidation(err))

	// 纯空白同样视为缺失
	err = suite.users.Create(ctx, &models.User{FullName: "   ", Email: "a@example.com"})
	suite.Error(err)
	suite.True(apperrors.IsValidation(err))
}

// TestCreateAndGet 测试创建后按ID读取
func (suite *UserServiceTestSuite) TestCreateAndGet() {
	ctx := context.Background()

	user := &models.User{FullName: "Ana Souza", Email: "ana@example.com"}
	suite.NoError(suite.users.Create(ctx, user))
	suite.NotZero(user.ID)

	found, err := suite.users.GetByID(ctx, user.ID)
	suite.NoError(err)
	suite.Require().NotNil(found)
	suite.Equal("Ana Souza", found.FullName)

	absent, err := suite.users.GetByID(ctx, 9999)
	suite.NoError(err)
	suite.Nil(absent)
}

// TestGetAll 测试按插入顺序列出用户
func (suite *UserServiceTestSuite) TestGetAll() {
	ctx := context.Background()

	suite.NoError(suite.users.Create(ctx, &models.User{FullName: "先来", Email: "1@example.com"}))
	suite.NoError(suite.users.Create(ctx, &models.User{FullName: "后到", Email: "2@example.com"}))

	users, err := suite.users.GetAll(ctx)
	suite.NoError(err)
	suite.Len(users, 2)
	suite.Equal("先来", users[0].FullName)
}

// TestRemove_SynonymOfDelete 测试Remove与Delete行为一致
func (suite *UserServiceTestSuite) TestRemove_SynonymOfDelete() {
	ctx := context.Background()

	user := &models.User{FullName: "待移除", Email: "rm@example.com"}
	suite.NoError(suite.users.Create(ctx, user))

	suite.NoError(suite.users.Remove(ctx, user.ID))

	found, err := suite.users.GetByID(ctx, user.ID)
	suite.NoError(err)
	suite.Nil(found)

	// 重复调用同样成功（幂等）
	suite.NoError(suite.users.Remove(ctx, user.ID))
	suite.NoError(suite.users.Delete(ctx, user.ID))
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
