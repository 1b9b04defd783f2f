package models

// 游戏分类（固定闭集，存储值沿用线上数据）
const (
	CategoryAction     = "Ação"
	CategoryRPG        = "RPG"
	CategoryStrategy   = "Estratégia"
	CategorySport      = "Esporte"
	CategorySimulation = "Simulação"
	CategoryOther      = "Outro"
)

// Categories 所有合法分类
var Categories = []string{
	CategoryAction,
	CategoryRPG,
	CategoryStrategy,
	CategorySport,
	CategorySimulation,
	CategoryOther,
}

// IsValidCategory 检查分类是否合法
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Game 游戏表
type Game struct {
	BaseModel
	Name        string     `gorm:"size:200;not null" json:"name"`
	Description string     `gorm:"size:2000" json:"description"`
	StartDate   string     `gorm:"size:30" json:"startDate"`
	EndDate     string     `gorm:"size:30" json:"endDate,omitempty"`
	Category    string     `gorm:"size:50;index;not null" json:"category"`
	Ratings     RatingList `gorm:"type:json" json:"ratings"`
	UserIDs     IDList     `gorm:"type:json" json:"userIds"`
}

// TableName 指定Game表名
func (Game) TableName() string {
	return "games"
}

// HasUser 判断游戏是否关联了指定用户
func (g *Game) HasUser(userID uint) bool {
	return g.UserIDs.Contains(userID)
}
