package controller

import (
	"classroom_backend/internal/model"
	"classroom_backend/internal/service"
	"classroom_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	NotificationService *service.NotificationService
}

type CreateNotificationRequest struct {
	ID          string  `json:"id"`
	UserID      string  `json:"userId" binding:"required" example:"u1"`
	Type        string  `json:"type" binding:"required,oneof=message assignment deadline group" example:"assignment"`
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	Timestamp   string  `json:"timestamp" binding:"required"`
	IsRead      bool    `json:"isRead"`
	Link        *string `json:"link" example:"subject-s1"`
}

func NewNotificationController(notificationService *service.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: notificationService}
}

// CreateNotification godoc
// @Summary 新增通知
// @Tags 通知
// @Accept json
// @Produce json
// @Param request body CreateNotificationRequest true "通知"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} util.ErrorResponse
// @Router /notifications [post]
func (ctrl *NotificationController) CreateNotification(c *gin.Context) {
	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	n := &model.Notification{
		ID:          req.ID,
		UserID:      req.UserID,
		Type:        req.Type,
		Title:       req.Title,
		Description: nonEmpty(req.Description),
		Timestamp:   req.Timestamp,
		IsRead:      req.IsRead,
		Link:        nonEmpty(req.Link),
	}
	if err := ctrl.NotificationService.Create(c.Request.Context(), n); err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.OK(c, gin.H{"notificationId": n.ID})
}

// MarkRead godoc
// @Summary 标记通知已读
// @Tags 通知
// @Produce json
// @Param id path string true "通知ID"
// @Success 200 {object} util.SuccessResponse
// @Router /notifications/{id}/read [patch]
func (ctrl *NotificationController) MarkRead(c *gin.Context) {
	if err := ctrl.NotificationService.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.OK(c, nil)
}
