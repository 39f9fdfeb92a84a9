// @title Classroom 2.0 API
// @version 1.0
// @description Classroom 2.0 的持久化后端, 保存用户快照、消息、帖子和通知。

// @host localhost:3001
// @BasePath /api

package main

import (
	"classroom_backend/internal/app"
	"classroom_backend/internal/config"
	"classroom_backend/pkg/logger"
	"flag"
	"log"
)

func main() {
	configDir := flag.String("config", "configs", "配置目录, 读取其中的 config.yaml")
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	application.ConfigDir = *configDir
	defer logger.Log.Sync()

	if *migrateOnly {
		logger.Log.Info("数据库迁移完成，退出程序")
		return
	}

	application.Run()
}
