package api

import (
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"
	apperrors "github.com/gamevault/catalog/internal/errors"
	"github.com/gamevault/catalog/internal/models"
	"github.com/gamevault/catalog/internal/service"
	"go.uber.org/zap"
)

// GameHandler 游戏处理器
type GameHandler struct {
	games    service.GameService
	comments service.CommentService
	log      *zap.Logger
}

// NewGameHandler 创建游戏处理器
func NewGameHandler(games service.GameService, comments service.CommentService, log *zap.Logger) *GameHandler {
	return &GameHandler{games: games, comments: comments, log: log}
}

// CreateGameRequest 创建游戏请求
type CreateGameRequest struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	StartDate   string            `json:"startDate"`
	EndDate     string            `json:"endDate"`
	Category    string            `json:"category" binding:"required"`
	Ratings     models.RatingList `json:"ratings"`
	UserIDs     models.IDList     `json:"userIds"`
}

// RateRequest 评分请求
type RateRequest struct {
	Value  int  `json:"value" binding:"required"`
	UserID uint `json:"userId"`
}

// GameResponse 游戏响应（附带平均评分）
type GameResponse struct {
	*models.Game
	AverageRating float64 `json:"averageRating"`
}

func (h *GameHandler) toResponse(game *models.Game) *GameResponse {
	return &GameResponse{Game: game, AverageRating: h.games.AverageRating(game)}
}

func (h *GameHandler) toResponseList(games []*models.Game) []*GameResponse {
	out := make([]*GameResponse, 0, len(games))
	for _, game := range games {
		out = append(out, h.toResponse(game))
	}
	return out
}

// parseID 解析路径中的数字ID
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		respondError(c, apperrors.Newf(apperrors.ErrInvalidParam, "无效的ID: %s", c.Param(name)))
		return 0, false
	}
	return uint(id), true
}

// List 游戏列表
// 支持 category 与 user 查询参数走索引查询，默认按创建倒序返回全部
func (h *GameHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if category := c.Query("category"); category != "" {
		games, err := h.games.ByCategory(ctx, category)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, 200, h.toResponseList(games))
		return
	}

	if user := c.Query("user"); user != "" {
		userID, err := strconv.ParseUint(user, 10, 32)
		if err != nil {
			respondError(c, apperrors.Newf(apperrors.ErrInvalidParam, "无效的用户ID: %s", user))
			return
		}
		games, err := h.games.ByUser(ctx, uint(userID))
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, 200, h.toResponseList(games))
		return
	}

	games, err := h.games.GetAll(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, 200, h.toResponseList(games))
}

// Create 创建游戏
func (h *GameHandler) Create(c *gin.Context) {
	var req CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.ErrInvalidParam))
		return
	}

	game := &models.Game{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Category:    req.Category,
		Ratings:     req.Ratings,
		UserIDs:     req.UserIDs,
	}
	if err := h.games.Create(c.Request.Context(), game); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, 201, h.toResponse(game))
}

// Get 获取单个游戏
func (h *GameHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	game, err := h.games.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if game == nil {
		respondError(c, apperrors.Newf(apperrors.ErrGameNotFound, "游戏 %d 不存在", id))
		return
	}
	respondOK(c, 200, h.toResponse(game))
}

// updatableGameColumns JSON字段名到存储列名的映射
// 主键和时间戳不在其中，不允许通过部分更新改写
var updatableGameColumns = map[string]string{
	"name":        "name",
	"description": "description",
	"startDate":   "start_date",
	"endDate":     "end_date",
	"category":    "category",
	"ratings":     "ratings",
	"userIds":     "user_ids",
}

// translateGameChanges 将请求中的JSON字段名转换为存储列名
// 未知字段和不可更新字段一律拒绝
func translateGameChanges(body map[string]interface{}) (map[string]interface{}, error) {
	changes := make(map[string]interface{}, len(body))
	for field, value := range body {
		column, ok := updatableGameColumns[field]
		if !ok {
			return nil, apperrors.Newf(apperrors.ErrInvalidParam, "字段 %q 不允许更新", field)
		}

		// 集合字段重新解码为内部类型，保持两种历史评分形态和字符串ID的归一化
		switch column {
		case "ratings":
			raw, err := json.Marshal(value)
			if err != nil {
				return nil, apperrors.Wrap(err, apperrors.ErrInvalidParam)
			}
			var ratings models.RatingList
			if err := json.Unmarshal(raw, &ratings); err != nil {
				return nil, apperrors.Wrapf(err, apperrors.ErrInvalidParam, "字段 %q 格式不正确", field)
			}
			changes[column] = ratings
		case "user_ids":
			raw, err := json.Marshal(value)
			if err != nil {
				return nil, apperrors.Wrap(err, apperrors.ErrInvalidParam)
			}
			var ids models.IDList
			if err := json.Unmarshal(raw, &ids); err != nil {
				return nil, apperrors.Wrapf(err, apperrors.ErrInvalidParam, "字段 %q 格式不正确", field)
			}
			changes[column] = ids
		default:
			changes[column] = value
		}
	}
	return changes, nil
}

// Update 部分更新游戏
func (h *GameHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.ErrInvalidParam))
		return
	}

	changes, err := translateGameChanges(body)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.games.Update(c.Request.Context(), id, changes); err != nil {
		respondError(c, err)
		return
	}

	game, err := h.games.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, 200, h.toResponse(game))
}

// Delete 删除游戏
func (h *GameHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.games.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, 200, gin.H{"deleted": id})
}

// Rate 追加评分
func (h *GameHandler) Rate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.ErrInvalidParam))
		return
	}

	rating := models.Rating{Value: req.Value, UserID: req.UserID}
	if err := h.games.Rate(c.Request.Context(), id, rating); err != nil {
		respondError(c, err)
		return
	}

	game, err := h.games.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, 200, h.toResponse(game))
}

// Ranking 按平均评分倒序的排名
func (h *GameHandler) Ranking(c *gin.Context) {
	games, err := h.games.Ranking(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, 200, h.toResponseList(games))
}

// ListComments 列出游戏的评论（按时间升序）
func (h *GameHandler) ListComments(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	comments, err := h.comments.ByGame(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, 200, comments)
}

// AddComment 为游戏添加评论
func (h *GameHandler) AddComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		UserID uint   `json:"userId" binding:"required"`
		Text   string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.ErrInvalidParam))
		return
	}

	comment := &models.Comment{GameID: id, UserID: req.UserID, Text: req.Text}
	if err := h.comments.Add(c.Request.Context(), comment); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, 201, comment)
}
