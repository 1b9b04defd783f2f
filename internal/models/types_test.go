package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"
)

// TypesTestSuite JSON列类型测试套件
type TypesTestSuite struct {
	suite.Suite
}

// 测试结构化评分条目解码
func (suite *TypesTestSuite) TestRatingListStructured() {
	var list RatingList
	err := json.Unmarshal([]byte(`[{"value":3,"userId":1},{"value":5,"userId":2}]`), &list)
	suite.NoError(err)
	suite.Len(list, 2)
	suite.Equal(3, list[0].Value)
	suite.Equal(uint(1), list[0].UserID)
	suite.Equal(5, list[1].Value)
}

// 测试旧版裸数字评分条目归一化
func (suite *TypesTestSuite) TestRatingListLegacyNumbers() {
	var list RatingList
	err := json.Unmarshal([]byte(`[3,5,4]`), &list)
	suite.NoError(err)
	suite.Len(list, 3)
	suite.Equal(3, list[0].Value)
	suite.Equal(uint(0), list[0].UserID)
	suite.Equal(4, list[2].Value)
}

// 测试混合形态评分条目
func (suite *TypesTestSuite) TestRatingListMixed() {
	var list RatingList
	err := json.Unmarshal([]byte(`[4,{"value":5,"userId":7}]`), &list)
	suite.NoError(err)
	suite.Len(list, 2)
	suite.Equal(4, list[0].Value)
	suite.Equal(Rating{Value: 5, UserID: 7}, list[1])
}

// 测试评分列表数据库读写
func (suite *TypesTestSuite) TestRatingListScanValue() {
	list := RatingList{{Value: 5, UserID: 1}}
	value, err := list.Value()
	suite.NoError(err)

	var decoded RatingList
	err = decoded.Scan(value)
	suite.NoError(err)
	suite.Equal(list, decoded)

	// 旧数据中的裸数字形态同样可以扫描
	var legacy RatingList
	err = legacy.Scan(`[3,5,4]`)
	suite.NoError(err)
	suite.Len(legacy, 3)
}

// 测试ID列表的数值归一化，"7" 与 7 等价
func (suite *TypesTestSuite) TestIDListCoercion() {
	var list IDList
	err := json.Unmarshal([]byte(`["7",8,"9"]`), &list)
	suite.NoError(err)
	suite.Equal(IDList{7, 8, 9}, list)
	suite.True(list.Contains(7))
	suite.True(list.Contains(9))
	suite.False(list.Contains(10))
}

// 测试ID列表扫描字符串存储形态
func (suite *TypesTestSuite) TestIDListScanStringIDs() {
	var list IDList
	err := list.Scan(`["7"]`)
	suite.NoError(err)
	suite.True(list.Contains(7))
}

// 测试非法ID条目
func (suite *TypesTestSuite) TestIDListInvalid() {
	var list IDList
	err := json.Unmarshal([]byte(`["abc"]`), &list)
	suite.Error(err)
}

// 测试空值扫描
func (suite *TypesTestSuite) TestScanNil() {
	var ratings RatingList
	suite.NoError(ratings.Scan(nil))
	suite.Empty(ratings)

	var ids IDList
	suite.NoError(ids.Scan(nil))
	suite.Empty(ids)

	var medals StringList
	suite.NoError(medals.Scan(nil))
	suite.Empty(medals)
}

// 测试分类合法性检查
func (suite *TypesTestSuite) TestIsValidCategory() {
	suite.True(IsValidCategory(CategoryRPG))
	suite.True(IsValidCategory(CategoryStrategy))
	suite.False(IsValidCategory("Puzzle"))
	suite.False(IsValidCategory(""))
}

func TestTypesTestSuite(t *testing.T) {
	suite.Run(t, new(TypesTestSuite))
}
