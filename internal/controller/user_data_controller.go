package controller

import (
	"classroom_backend/internal/service"
	"classroom_backend/internal/util"
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
)

type UserDataController struct {
	UserDataService *service.UserDataService
}

// SaveUserDataRequest 四个集合都按原样保存
type SaveUserDataRequest struct {
	Posts         json.RawMessage `json:"posts" swaggertype:"array,object"`
	Groups        json.RawMessage `json:"groups" swaggertype:"array,object"`
	Notifications json.RawMessage `json:"notifications" swaggertype:"array,object"`
	ChatHistories json.RawMessage `json:"chatHistories" swaggertype:"object"`
}

func NewUserDataController(userDataService *service.UserDataService) *UserDataController {
	return &UserDataController{UserDataService: userDataService}
}

// GetUserData godoc
// @Summary 获取用户快照
// @Tags 用户数据
// @Produce json
// @Param id path string true "用户ID"
// @Success 200 {object} service.UserBundle
// @Failure 404 {object} util.ErrorResponse
// @Router /user/{id} [get]
func (ctrl *UserDataController) GetUserData(c *gin.Context) {
	userID := c.Param("id")

	bundle, err := ctrl.UserDataService.GetBundle(c.Request.Context(), userID)
	if errors.Is(err, util.ErrUserDataNotFound) {
		util.NotFound(c, "User data not found")
		return
	}
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, bundle)
}

// SaveUserData godoc
// @Summary 保存用户快照
// @Description 按用户ID整体覆盖
// @Tags 用户数据
// @Accept json
// @Produce json
// @Param id path string true "用户ID"
// @Param request body SaveUserDataRequest true "快照"
// @Success 200 {object} util.SuccessResponse
// @Failure 400 {object} util.ErrorResponse
// @Router /user/{id}/save [post]
func (ctrl *UserDataController) SaveUserData(c *gin.Context) {
	var req SaveUserDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	err := ctrl.UserDataService.SaveBundle(c.Request.Context(), &service.UserBundle{
		UserID:        c.Param("id"),
		Posts:         req.Posts,
		Groups:        req.Groups,
		Notifications: req.Notifications,
		ChatHistories: req.ChatHistories,
	})
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.OK(c, gin.H{"message": "User data saved"})
}
