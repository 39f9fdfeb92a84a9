package controller

import (
	"classroom_backend/internal/model"
	"classroom_backend/internal/service"
	"classroom_backend/internal/util"
	"classroom_backend/pkg/classroom"
	"errors"

	"github.com/gin-gonic/gin"
)

type PostController struct {
	PostService *service.PostService
}

type CreatePostRequest struct {
	ID               string  `json:"id"`
	AuthorID         string  `json:"authorId" binding:"required" example:"u7"`
	Title            *string `json:"title" example:"読書感想文の提出"`
	Content          string  `json:"content" binding:"required"`
	Timestamp        string  `json:"timestamp" binding:"required" example:"2024/05/10"`
	Deadline         *string `json:"deadline" example:"5月20日"`
	SubjectID        *string `json:"subjectId" example:"s1"`
	IsAssignment     bool    `json:"isAssignment"`
	SimulationStatus string  `json:"simulationStatus" example:"pending"`
}

func NewPostController(postService *service.PostService) *PostController {
	return &PostController{PostService: postService}
}

// CreatePost godoc
// @Summary 新增帖子
// @Tags 帖子
// @Accept json
// @Produce json
// @Param request body CreatePostRequest true "帖子"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} util.ErrorResponse
// @Router /posts [post]
func (ctrl *PostController) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	post := &model.Post{
		ID:               req.ID,
		AuthorID:         req.AuthorID,
		Title:            nonEmpty(req.Title),
		Content:          req.Content,
		Timestamp:        req.Timestamp,
		Deadline:         nonEmpty(req.Deadline),
		SubjectID:        nonEmpty(req.SubjectID),
		IsAssignment:     req.IsAssignment,
		SimulationStatus: classroom.SimulationStatus(req.SimulationStatus),
	}
	err := ctrl.PostService.Create(c.Request.Context(), post)
	if errors.Is(err, util.ErrInvalidStatus) {
		util.BadRequest(c, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.OK(c, gin.H{"postId": post.ID})
}
