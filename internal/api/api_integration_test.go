package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gamevault/catalog/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := repository.SetupTestDB()
	t.Cleanup(func() { repository.CleanupTestDB(db) })

	return NewRouter(db, zap.NewNop()).GetEngine()
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var resp struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	return data
}

func decodeDataList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()

	var resp struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)

	var data []map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	return data
}

// TestHealthCheck 测试健康检查端点
func TestHealthCheck(t *testing.T) {
	engine := setupTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}

// TestGameLifecycle 测试游戏的创建、读取、评分、删除全流程
func TestGameLifecycle(t *testing.T) {
	engine := setupTestRouter(t)

	// 创建
	w := doJSON(t, engine, "POST", "/api/games", map[string]interface{}{
		"name":      "Chess Master",
		"startDate": "2024-01-10",
		"category":  "Estratégia",
		"userIds":   []uint{1},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeData(t, w)
	gameID := created["id"].(float64)
	assert.Equal(t, float64(1), gameID)

	// 按ID读取
	w = doJSON(t, engine, "GET", fmt.Sprintf("/api/games/%.0f", gameID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	fetched := decodeData(t, w)
	assert.Equal(t, "Chess Master", fetched["name"])
	assert.Equal(t, float64(0), fetched["averageRating"])

	// 评分
	w = doJSON(t, engine, "POST", fmt.Sprintf("/api/games/%.0f/ratings", gameID), map[string]interface{}{
		"value":  5,
		"userId": 1,
	})
	require.Equal(t, http.StatusOK, w.Code)
	rated := decodeData(t, w)
	assert.Equal(t, float64(5), rated["averageRating"])

	// 删除后读取返回404
	w = doJSON(t, engine, "DELETE", fmt.Sprintf("/api/games/%.0f", gameID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, "GET", fmt.Sprintf("/api/games/%.0f", gameID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestGameValidationErrors 测试校验失败的HTTP映射
func TestGameValidationErrors(t *testing.T) {
	engine := setupTestRouter(t)

	// 非法分类返回400
	w := doJSON(t, engine, "POST", "/api/games", map[string]interface{}{
		"name":     "测试",
		"category": "Puzzle",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 缺少必填字段返回400
	w = doJSON(t, engine, "POST", "/api/games", map[string]interface{}{
		"category": "RPG",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 给不存在的游戏评分返回404
	w = doJSON(t, engine, "POST", "/api/games/9999/ratings", map[string]interface{}{
		"value": 3,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 评分超出范围返回400
	doJSON(t, engine, "POST", "/api/games", map[string]interface{}{
		"name":     "测试",
		"category": "RPG",
	})
	w = doJSON(t, engine, "POST", "/api/games/1/ratings", map[string]interface{}{
		"value": 6,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestGameUpdate 测试部分更新使用API自身的字段名
func TestGameUpdate(t *testing.T) {
	engine := setupTestRouter(t)

	w := doJSON(t, engine, "POST", "/api/games", map[string]interface{}{
		"name":      "原始名称",
		"startDate": "2024-01-01",
		"category":  "RPG",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// 驼峰字段名直接可用，且只合并给定字段
	w = doJSON(t, engine, "PUT", "/api/games/1", map[string]interface{}{
		"startDate": "2024-06-01",
	})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeData(t, w)
	assert.Equal(t, "2024-06-01", updated["startDate"])
	assert.Equal(t, "原始名称", updated["name"])
	assert.Equal(t, "RPG", updated["category"])

	// 集合字段同样按API字段名更新，归一化规则保持生效
	w = doJSON(t, engine, "PUT", "/api/games/1", map[string]interface{}{
		"userIds": []interface{}{"7"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, "GET", "/api/games?user=7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decodeDataList(t, w), 1)

	// 非法分类返回400
	w = doJSON(t, engine, "PUT", "/api/games/1", map[string]interface{}{
		"category": "Puzzle",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 未知字段返回400
	w = doJSON(t, engine, "PUT", "/api/games/1", map[string]interface{}{
		"publisher": "某公司",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 主键和时间戳不允许改写
	w = doJSON(t, engine, "PUT", "/api/games/1", map[string]interface{}{
		"id": 42,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, engine, "GET", "/api/games/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeData(t, w)["id"])

	// 不存在的游戏返回404
	w = doJSON(t, engine, "PUT", "/api/games/9999", map[string]interface{}{
		"name": "不存在",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestGameQueryFilters 测试分类与用户查询参数
func TestGameQueryFilters(t *testing.T) {
	engine := setupTestRouter(t)

	doJSON(t, engine, "POST", "/api/games", map[string]interface{}{
		"name":     "RPG游戏",
		"category": "RPG",
		"userIds":  []uint{7},
	})
	doJSON(t, engine, "POST", "/api/games", map[string]interface{}{
		"name":     "体育游戏",
		"category": "Esporte",
	})

	w := doJSON(t, engine, "GET", "/api/games?category=RPG", nil)
	require.Equal(t, http.StatusOK, w.Code)
	byCategory := decodeDataList(t, w)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "RPG游戏", byCategory[0]["name"])

	w = doJSON(t, engine, "GET", "/api/games?user=7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	byUser := decodeDataList(t, w)
	require.Len(t, byUser, 1)
	assert.Equal(t, "RPG游戏", byUser[0]["name"])

	// 列表默认按创建倒序
	w = doJSON(t, engine, "GET", "/api/games", nil)
	all := decodeDataList(t, w)
	require.Len(t, all, 2)
	assert.Equal(t, "体育游戏", all[0]["name"])
}

// TestRankingEndpoint 测试排名端点按平均分倒序
func TestRankingEndpoint(t *testing.T) {
	engine := setupTestRouter(t)

	doJSON(t, engine, "POST", "/api/games", map[string]interface{}{
		"name": "低分", "category": "Outro", "ratings": []int{2},
	})
	doJSON(t, engine, "POST", "/api/games", map[string]interface{}{
		"name": "高分", "category": "Outro", "ratings": []int{5},
	})

	w := doJSON(t, engine, "GET", "/api/games/ranking", nil)
	require.Equal(t, http.StatusOK, w.Code)
	ranking := decodeDataList(t, w)
	require.Len(t, ranking, 2)
	assert.Equal(t, "高分", ranking[0]["name"])
	assert.Equal(t, float64(5), ranking[0]["averageRating"])
}

// TestCommentRoutes 测试评论的增删查
func TestCommentRoutes(t *testing.T) {
	engine := setupTestRouter(t)

	doJSON(t, engine, "POST", "/api/games", map[string]interface{}{
		"name": "带评论的游戏", "category": "Ação",
	})

	w := doJSON(t, engine, "POST", "/api/games/1/comments", map[string]interface{}{
		"userId": 1,
		"text":   "很好玩",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	comment := decodeData(t, w)

	w = doJSON(t, engine, "GET", "/api/games/1/comments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	comments := decodeDataList(t, w)
	require.Len(t, comments, 1)
	assert.Equal(t, "很好玩", comments[0]["text"])

	// 空文本返回400
	w = doJSON(t, engine, "POST", "/api/games/1/comments", map[string]interface{}{
		"userId": 1,
		"text":   "",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, engine, "DELETE", fmt.Sprintf("/api/comments/%.0f", comment["id"].(float64)), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, "GET", "/api/games/1/comments", nil)
	assert.Empty(t, decodeDataList(t, w))
}

// TestUserRoutes 测试用户路由
func TestUserRoutes(t *testing.T) {
	engine := setupTestRouter(t)

	w := doJSON(t, engine, "POST", "/api/users", map[string]interface{}{
		"fullName": "Ana Souza",
		"email":    "ana@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeData(t, w)
	assert.Equal(t, float64(1), created["id"])

	w = doJSON(t, engine, "GET", "/api/users/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, "GET", "/api/users/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, engine, "GET", "/api/users", nil)
	assert.Len(t, decodeDataList(t, w), 1)

	w = doJSON(t, engine, "DELETE", "/api/users/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, "GET", "/api/users/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestRequestIDHeader 测试请求ID贯穿响应
func TestRequestIDHeader(t *testing.T) {
	engine := setupTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/games", nil)
	engine.ServeHTTP(w, req)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	// 调用方给定的请求ID原样返回
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/api/games", nil)
	req.Header.Set("X-Request-ID", "trace-123")
	engine.ServeHTTP(w, req)
	assert.Equal(t, "trace-123", w.Header().Get("X-Request-ID"))
}
