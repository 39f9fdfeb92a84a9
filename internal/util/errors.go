package util

import "errors"

var (
	ErrUserDataNotFound = errors.New("user data not found")
	ErrMessageNotFound  = errors.New("message not found")
	ErrInvalidStatus    = errors.New("invalid simulation status")
	ErrInvalidFileType  = errors.New("invalid file type")
	ErrFileTooLarge     = errors.New("file too large")
)
