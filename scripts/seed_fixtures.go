// 将演示数据写入 SQLite, 便于客户端切换用户时直接从后端恢复
//
// 用法: go run scripts/seed_fixtures.go [-config configs/config.yaml] [-fixtures extra.yaml]
//
// extra.yaml 的顶层键为用户ID, 值与 /user/{id} 的快照结构相同。

package main

import (
	"classroom_backend/internal/config"
	"classroom_backend/internal/repository"
	"classroom_backend/internal/service"
	"classroom_backend/pkg/classroom"
	"classroom_backend/pkg/database"
	"classroom_backend/pkg/logger"
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type seedConfig struct {
	Database struct {
		Path     string `yaml:"path"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"database"`
}

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件")
	fixturesPath := flag.String("fixtures", "", "额外的快照 YAML")
	flag.Parse()

	data, err := os.ReadFile(*configPath)
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}
	var sc seedConfig
	if err := yaml.Unmarshal(data, &sc); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	cfg := &config.Config{}
	cfg.Server.Mode = "debug"
	cfg.Database.Path = sc.Database.Path
	cfg.Database.LogLevel = sc.Database.LogLevel
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	bundles := map[string]classroom.Bundle{}
	fixtures := classroom.DefaultFixtures()
	for _, u := range classroom.Users {
		bundles[u.ID] = fixtures.For(u.ID)
	}
	if *fixturesPath != "" {
		extra, err := loadFixtures(*fixturesPath)
		if err != nil {
			log.Fatalf("读取快照失败: %v", err)
		}
		for id, b := range extra {
			bundles[id] = b
		}
	}

	svc := service.NewUserDataService(repository.NewUserDataRepository(db), nil, 0)
	ctx := context.Background()
	for id, b := range bundles {
		bundle, err := toUserBundle(id, b)
		if err != nil {
			log.Fatalf("编码快照失败 %s: %v", id, err)
		}
		if err := svc.SaveBundle(ctx, bundle); err != nil {
			log.Fatalf("写入快照失败 %s: %v", id, err)
		}
		logger.Log.Info("seeded bundle", zap.String("user_id", id), zap.Int("posts", len(b.Posts)))
	}
	log.Printf("完成！共写入 %d 个用户", len(bundles))
}

// loadFixtures 先按 YAML 解码再转成 JSON, 字段名沿用 JSON 标签
func loadFixtures(path string) (map[string]classroom.Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var out map[string]classroom.Bundle
	if err := json.Unmarshal(encoded, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func toUserBundle(userID string, b classroom.Bundle) (*service.UserBundle, error) {
	posts, err := json.Marshal(b.Posts)
	if err != nil {
		return nil, err
	}
	groups, err := json.Marshal(b.Groups)
	if err != nil {
		return nil, err
	}
	notifications, err := json.Marshal(b.Notifications)
	if err != nil {
		return nil, err
	}
	histories, err := json.Marshal(b.ChatHistories)
	if err != nil {
		return nil, err
	}
	return &service.UserBundle{
		UserID:        userID,
		Posts:         posts,
		Groups:        groups,
		Notifications: notifications,
		ChatHistories: histories,
	}, nil
}
