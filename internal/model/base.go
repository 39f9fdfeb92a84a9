package model

import (
	"github.com/google/uuid"
)

// 客户端未提供 ID 时由服务端生成
func ensureID(id *string) {
	if *id == "" {
		*id = GenerateUUID()
	}
}

func GenerateUUID() string {
	return uuid.New().String()
}
