package util

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"
)

// ValidateMimeType 读取前 512 字节检测 MIME 类型
// allowedTypes: 允许的 MIME 前缀或完整类型，如 "image/", "application/pdf"
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, nil
		}
	}

	return mimeType, ErrInvalidFileType
}

// AttachmentType 按扩展名归类附件
func AttachmentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".doc", ".docx", ".txt", ".md":
		return AttachmentDoc
	case ".key", ".odp":
		return AttachmentSlide
	case ".ppt", ".pptx":
		return AttachmentPPT
	case ".xls", ".xlsx", ".csv", ".ods":
		return AttachmentSheet
	case ".pdf":
		return AttachmentPDF
	}
	return AttachmentFile
}
