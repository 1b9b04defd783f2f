package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
)

// Rating 评分条目
type Rating struct {
	Value  int  `json:"value"`
	UserID uint `json:"userId"`
}

// RatingList 评分列表（JSON列）
// 历史数据中存在裸数字形式的评分条目，解码时统一归一化为 Rating 结构
type RatingList []Rating

// UnmarshalJSON 兼容两种条目形态：5 和 {"value":5,"userId":1}
func (l *RatingList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	ratings := make(RatingList, 0, len(raw))
	for _, item := range raw {
		var value float64
		if err := json.Unmarshal(item, &value); err == nil {
			// 旧版裸数字条目，没有提交者信息
			ratings = append(ratings, Rating{Value: int(value)})
			continue
		}

		var r Rating
		if err := json.Unmarshal(item, &r); err != nil {
			return fmt.Errorf("无法解析评分条目 %s: %w", string(item), err)
		}
		ratings = append(ratings, r)
	}

	*l = ratings
	return nil
}

// Value 实现driver.Valuer接口
func (l RatingList) Value() (driver.Value, error) {
	if l == nil {
		l = RatingList{}
	}
	data, err := json.Marshal([]Rating(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan 实现sql.Scanner接口
func (l *RatingList) Scan(value interface{}) error {
	if value == nil {
		*l = RatingList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("无法将 %T 扫描为 RatingList", value)
	}

	if len(data) == 0 {
		*l = RatingList{}
		return nil
	}
	return l.UnmarshalJSON(data)
}

// IDList 用户ID列表（JSON列）
// 旧数据中ID可能以字符串形式存储，解码时做数值归一化，"7" 与 7 等价
type IDList []uint

// UnmarshalJSON 兼容数字和字符串两种ID形态
func (l *IDList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	ids := make(IDList, 0, len(raw))
	for _, item := range raw {
		var n uint64
		if err := json.Unmarshal(item, &n); err == nil {
			ids = append(ids, uint(n))
			continue
		}

		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			return fmt.Errorf("无法解析ID条目 %s", string(item))
		}
		parsed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("无效的ID值 %q: %w", s, err)
		}
		ids = append(ids, uint(parsed))
	}

	*l = ids
	return nil
}

// Contains 判断列表中是否包含指定ID
func (l IDList) Contains(id uint) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Value 实现driver.Valuer接口
func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		l = IDList{}
	}
	data, err := json.Marshal([]uint(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan 实现sql.Scanner接口
func (l *IDList) Scan(value interface{}) error {
	if value == nil {
		*l = IDList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("无法将 %T 扫描为 IDList", value)
	}

	if len(data) == 0 {
		*l = IDList{}
		return nil
	}
	return l.UnmarshalJSON(data)
}

// StringList 字符串列表（JSON列）
type StringList []string

// Value 实现driver.Valuer接口
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan 实现sql.Scanner接口
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("无法将 %T 扫描为 StringList", value)
	}

	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(data, (*[]string)(l))
}
