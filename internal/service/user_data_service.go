package service

import (
	"bytes"
	"classroom_backend/internal/model"
	"classroom_backend/internal/repository"
	"classroom_backend/internal/util"
	"classroom_backend/pkg/logger"
	"classroom_backend/pkg/monitoring"
	"classroom_backend/pkg/tracing"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	emptyList   = json.RawMessage(`[]`)
	emptyObject = json.RawMessage(`{}`)
)

// UserBundle 某个用户的完整快照, 各字段为客户端原始 JSON
type UserBundle struct {
	UserID        string          `json:"userId"`
	Posts         json.RawMessage `json:"posts"`
	Groups        json.RawMessage `json:"groups"`
	Notifications json.RawMessage `json:"notifications"`
	ChatHistories json.RawMessage `json:"chatHistories"`
}

type UserDataService struct {
	Repo  *repository.UserDataRepository
	Redis *redis.Client
	TTL   time.Duration
}

func NewUserDataService(repo *repository.UserDataRepository, rdb *redis.Client, ttl time.Duration) *UserDataService {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &UserDataService{Repo: repo, Redis: rdb, TTL: ttl}
}

func cacheKey(userID string) string {
	return fmt.Sprintf("classroom:bundle:%s", userID)
}

// GetBundle 未保存过的用户返回 util.ErrUserDataNotFound
func (s *UserDataService) GetBundle(ctx context.Context, userID string) (*UserBundle, error) {
	ctx, span := tracing.Tracer.Start(ctx, "UserDataService.GetBundle")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey(userID)).Bytes(); err == nil {
			var bundle UserBundle
			if err := json.Unmarshal(cached, &bundle); err == nil {
				monitoring.BundleOps.WithLabelValues("load", "cache").Inc()
				return &bundle, nil
			}
		}
	}

	data, err := s.Repo.FindByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		monitoring.BundleOps.WithLabelValues("load", "not_found").Inc()
		return nil, util.ErrUserDataNotFound
	}
	if err != nil {
		monitoring.BundleOps.WithLabelValues("load", "error").Inc()
		return nil, fmt.Errorf("load user data %s: %w", userID, err)
	}

	bundle := &UserBundle{
		UserID:        userID,
		Posts:         orDefault(data.PostsJSON, emptyList),
		Groups:        orDefault(data.GroupsJSON, emptyList),
		Notifications: orDefault(data.NotificationsJSON, emptyList),
		ChatHistories: orDefault(data.ChatHistoriesJSON, emptyObject),
	}

	// 保存可能在读库之后写入了新值, 只在缓存为空时回填
	s.cacheBundle(ctx, bundle, false)

	monitoring.BundleOps.WithLabelValues("load", "ok").Inc()
	return bundle, nil
}

// SaveBundle 全量覆盖
func (s *UserDataService) SaveBundle(ctx context.Context, bundle *UserBundle) error {
	ctx, span := tracing.Tracer.Start(ctx, "UserDataService.SaveBundle")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", bundle.UserID))

	data := &model.UserData{
		UserID:            bundle.UserID,
		PostsJSON:         datatypes.JSON(orDefault(bundle.Posts, emptyList)),
		GroupsJSON:        datatypes.JSON(orDefault(bundle.Groups, emptyList)),
		NotificationsJSON: datatypes.JSON(orDefault(bundle.Notifications, emptyList)),
		ChatHistoriesJSON: datatypes.JSON(orDefault(bundle.ChatHistories, emptyObject)),
	}

	if err := s.Repo.Upsert(ctx, data); err != nil {
		monitoring.BundleOps.WithLabelValues("save", "error").Inc()
		return fmt.Errorf("save user data %s: %w", bundle.UserID, err)
	}

	s.cacheBundle(ctx, &UserBundle{
		UserID:        bundle.UserID,
		Posts:         json.RawMessage(data.PostsJSON),
		Groups:        json.RawMessage(data.GroupsJSON),
		Notifications: json.RawMessage(data.NotificationsJSON),
		ChatHistories: json.RawMessage(data.ChatHistoriesJSON),
	}, true)

	monitoring.BundleOps.WithLabelValues("save", "ok").Inc()
	return nil
}

// cacheBundle overwrite 为 false 时使用 SetNX; 覆盖写失败时删除旧值, 删除也失败只记录日志
func (s *UserDataService) cacheBundle(ctx context.Context, bundle *UserBundle, overwrite bool) {
	if s.Redis == nil {
		return
	}
	key := cacheKey(bundle.UserID)
	raw, err := json.Marshal(bundle)
	if err == nil {
		if overwrite {
			err = s.Redis.Set(ctx, key, raw, s.TTL).Err()
		} else {
			err = s.Redis.SetNX(ctx, key, raw, s.TTL).Err()
		}
	}
	if err == nil {
		return
	}
	logger.Log.Warn("bundle cache write failed", zap.String("userId", bundle.UserID), zap.Error(err))
	if !overwrite {
		return
	}
	if err := s.Redis.Del(ctx, key).Err(); err != nil {
		logger.Log.Warn("bundle cache invalidate failed", zap.String("userId", bundle.UserID), zap.Error(err))
	}
}

func orDefault(raw []byte, def json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return def
	}
	return json.RawMessage(trimmed)
}
