package repository

import (
	"context"
	"testing"

	"github.com/gamevault/catalog/internal/models"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// UserRepositoryTestSuite 用户仓储测试套件
type UserRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo UserRepository
}

func (suite *UserRepositoryTestSuite) SetupTest() {
	suite.db = SetupTestDB()
	suite.repo = NewUserRepository(suite.db)
}

func (suite *UserRepositoryTestSuite) TearDownTest() {
	CleanupTestDB(suite.db)
}

// TestUserRepository_Create 测试创建用户并回读
func (suite *UserRepositoryTestSuite) TestUserRepository_Create() {
	ctx := context.Background()

	user := &models.User{
		FullName: "Ana Souza",
		Email:    "ana@example.com",
		Points:   120,
		Medals:   models.StringList{"gold", "silver"},
	}

	err := suite.repo.Create(ctx, user)
	suite.NoError(err)
	suite.NotZero(user.ID)

	found, err := suite.repo.FindByID(ctx, user.ID)
	suite.NoError(err)
	suite.NotNil(found)
	suite.Equal(user.FullName, found.FullName)
	suite.Equal(user.Email, found.Email)
	suite.Equal(user.Points, found.Points)
	suite.Equal(user.Medals, found.Medals)
}

// TestUserRepository_IDMonotonic 测试ID删除后不复用
func (suite *UserRepositoryTestSuite) TestUserRepository_IDMonotonic() {
	ctx := context.Background()

	first := CreateTestUser("用户A", "a@example.com")
	suite.NoError(suite.repo.Create(ctx, first))

	second := CreateTestUser("用户B", "b@example.com")
	suite.NoError(suite.repo.Create(ctx, second))

	suite.NoError(suite.repo.Delete(ctx, second.ID))

	third := CreateTestUser("用户C", "c@example.com")
	suite.NoError(suite.repo.Create(ctx, third))
	suite.Greater(third.ID, second.ID)
}

// TestUserRepository_FindByID_Absent 测试查找不存在的用户返回nil
func (suite *UserRepositoryTestSuite) TestUserRepository_FindByID_Absent() {
	ctx := context.Background()

	found, err := suite.repo.FindByID(ctx, 42)
	suite.NoError(err)
	suite.Nil(found)
}

// TestUserRepository_GetAll 测试按插入顺序返回所有用户
func (suite *UserRepositoryTestSuite) TestUserRepository_GetAll() {
	ctx := context.Background()

	suite.NoError(suite.repo.Create(ctx, CreateTestUser("第一位", "1@example.com")))
	suite.NoError(suite.repo.Create(ctx, CreateTestUser("第二位", "2@example.com")))

	users, err := suite.repo.GetAll(ctx)
	suite.NoError(err)
	suite.Len(users, 2)
	suite.Equal("第一位", users[0].FullName)
	suite.Equal("第二位", users[1].FullName)
}

// TestUserRepository_Delete_Idempotent 测试重复删除幂等
func (suite *UserRepositoryTestSuite) TestUserRepository_Delete_Idempotent() {
	ctx := context.Background()

	user := CreateTestUser("待删除", "del@example.com")
	suite.NoError(suite.repo.Create(ctx, user))

	suite.NoError(suite.repo.Delete(ctx, user.ID))
	suite.NoError(suite.repo.Delete(ctx, user.ID))

	found, err := suite.repo.FindByID(ctx, user.ID)
	suite.NoError(err)
	suite.Nil(found)
}

func TestUserRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryTestSuite))
}
