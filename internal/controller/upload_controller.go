package controller

import (
	"classroom_backend/internal/service"
	"classroom_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type UploadController struct {
	StorageService *service.StorageService
}

func NewUploadController(storageService *service.StorageService) *UploadController {
	return &UploadController{StorageService: storageService}
}

// Upload godoc
// @Summary 上传附件
// @Tags 附件
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "附件"
// @Success 200 {object} service.UploadedFile
// @Failure 400 {object} util.ErrorResponse
// @Failure 413 {object} util.ErrorResponse
// @Router /upload [post]
func (ctrl *UploadController) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		util.BadRequest(c, "file is required")
		return
	}

	file, err := header.Open()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	defer file.Close()

	uploaded, err := ctrl.StorageService.SaveAttachment(c.Request.Context(), header.Filename, file, header.Size)
	switch {
	case errors.Is(err, util.ErrFileTooLarge):
		util.Error(c, http.StatusRequestEntityTooLarge, err.Error())
		return
	case errors.Is(err, util.ErrInvalidFileType):
		util.BadRequest(c, err.Error())
		return
	case err != nil:
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, uploaded)
}
