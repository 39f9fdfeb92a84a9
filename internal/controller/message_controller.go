package controller

import (
	"classroom_backend/internal/model"
	"classroom_backend/internal/service"
	"classroom_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type MessageController struct {
	MessageService *service.MessageService
}

// CreateMessageRequest receiverId 与 groupId 二选一
type CreateMessageRequest struct {
	ID         string  `json:"id" example:"dm_u2_1"`
	SenderID   string  `json:"senderId" binding:"required" example:"u2"`
	ReceiverID *string `json:"receiverId" example:"u1"`
	GroupID    *string `json:"groupId" example:"G1"`
	Content    string  `json:"content" binding:"required" example:"ノート見せて"`
	Timestamp  string  `json:"timestamp" binding:"required" example:"09:30"`
	IsRead     bool    `json:"isRead"`
	ReplyToID  *string `json:"replyToId"`
}

// ReactionRequest 切换表情
type ReactionRequest struct {
	Type   string `json:"type" binding:"required" example:"heart"`
	UserID string `json:"userId" binding:"required" example:"u1"`
}

func NewMessageController(messageService *service.MessageService) *MessageController {
	return &MessageController{MessageService: messageService}
}

// CreateMessage godoc
// @Summary 新增消息
// @Tags 消息
// @Accept json
// @Produce json
// @Param request body CreateMessageRequest true "消息"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} util.ErrorResponse
// @Router /messages [post]
func (ctrl *MessageController) CreateMessage(c *gin.Context) {
	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	msg := &model.ChatMessage{
		ID:         req.ID,
		SenderID:   req.SenderID,
		ReceiverID: nonEmpty(req.ReceiverID),
		GroupID:    nonEmpty(req.GroupID),
		Content:    req.Content,
		Timestamp:  req.Timestamp,
		IsRead:     req.IsRead,
		ReplyToID:  nonEmpty(req.ReplyToID),
	}
	if err := ctrl.MessageService.Create(c.Request.Context(), msg); err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.OK(c, gin.H{"messageId": msg.ID})
}

// ListMessages godoc
// @Summary 获取会话消息
// @Description 返回 groupId、receiverId 或 senderId 等于该 ID 的消息, 按时间升序
// @Tags 消息
// @Produce json
// @Param id path string true "群ID或用户ID"
// @Success 200 {array} model.ChatMessage
// @Router /messages/{id} [get]
func (ctrl *MessageController) ListMessages(c *gin.Context) {
	messages, err := ctrl.MessageService.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, messages)
}

// ToggleReaction godoc
// @Summary 切换消息表情
// @Description 已存在则删除, 否则添加; count 为该消息的反应总数
// @Tags 消息
// @Accept json
// @Produce json
// @Param id path string true "消息ID"
// @Param request body ReactionRequest true "表情"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} util.ErrorResponse
// @Router /messages/{id}/reaction [post]
func (ctrl *MessageController) ToggleReaction(c *gin.Context) {
	var req ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	active, count, err := ctrl.MessageService.ToggleReaction(c.Request.Context(), c.Param("id"), req.Type, req.UserID)
	if errors.Is(err, util.ErrMessageNotFound) {
		util.NotFound(c, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.OK(c, gin.H{"active": active, "count": count})
}

// MarkRead godoc
// @Summary 标记消息已读
// @Tags 消息
// @Produce json
// @Param id path string true "消息ID"
// @Success 200 {object} util.SuccessResponse
// @Router /messages/{id}/read [patch]
func (ctrl *MessageController) MarkRead(c *gin.Context) {
	if err := ctrl.MessageService.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.OK(c, nil)
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
