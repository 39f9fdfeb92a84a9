package service

import (
	"classroom_backend/internal/config"
	"classroom_backend/internal/repository"
	"classroom_backend/internal/util"
	"classroom_backend/pkg/database"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUserData(t *testing.T) (*repository.UserDataRepository, *redis.Client, *miniredis.Miniredis) {
	t.Helper()
	db, err := database.InitDB(&config.DatabaseConfig{Path: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { rdb.Close() })
	return repository.NewUserDataRepository(db), rdb, mr
}

func bundleWithPost(userID, postID string) *UserBundle {
	return &UserBundle{
		UserID: userID,
		Posts:  json.RawMessage(`[{"id":"` + postID + `"}]`),
	}
}

func TestUserDataService_GetBundle(t *testing.T) {
	ctx := context.Background()

	t.Run("never saved", func(t *testing.T) {
		repo, rdb, mr := setupUserData(t)
		svc := NewUserDataService(repo, rdb, time.Minute)

		_, err := svc.GetBundle(ctx, "u1")
		assert.ErrorIs(t, err, util.ErrUserDataNotFound)
		assert.False(t, mr.Exists(cacheKey("u1")))
	})

	t.Run("miss fills cache with ttl", func(t *testing.T) {
		repo, rdb, mr := setupUserData(t)
		svc := NewUserDataService(repo, rdb, time.Minute)
		require.NoError(t, svc.SaveBundle(ctx, bundleWithPost("u1", "p1")))
		mr.FlushAll()

		got, err := svc.GetBundle(ctx, "u1")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":"p1"}]`, string(got.Posts))
		assert.JSONEq(t, `[]`, string(got.Groups))
		assert.JSONEq(t, `{}`, string(got.ChatHistories))
		assert.True(t, mr.Exists(cacheKey("u1")))
		assert.Equal(t, time.Minute, mr.TTL(cacheKey("u1")))
	})

	t.Run("redis down falls back to db", func(t *testing.T) {
		repo, rdb, mr := setupUserData(t)
		svc := NewUserDataService(repo, rdb, time.Minute)
		mr.Close()

		require.NoError(t, svc.SaveBundle(ctx, bundleWithPost("u1", "p1")))
		got, err := svc.GetBundle(ctx, "u1")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":"p1"}]`, string(got.Posts))
	})
}

func TestUserDataService_SaveVisibleAcrossInstances(t *testing.T) {
	ctx := context.Background()
	repo, rdb, _ := setupUserData(t)
	a := NewUserDataService(repo, rdb, time.Minute)
	b := NewUserDataService(repo, rdb, time.Minute)

	require.NoError(t, a.SaveBundle(ctx, bundleWithPost("u1", "old")))
	got, err := a.GetBundle(ctx, "u1")
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":"old"}]`, string(got.Posts))

	require.NoError(t, b.SaveBundle(ctx, bundleWithPost("u1", "new")))

	got, err = a.GetBundle(ctx, "u1")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"new"}]`, string(got.Posts))
}

func TestUserDataService_LateFillKeepsNewerSave(t *testing.T) {
	ctx := context.Background()
	repo, rdb, mr := setupUserData(t)
	svc := NewUserDataService(repo, rdb, time.Minute)

	require.NoError(t, svc.SaveBundle(ctx, bundleWithPost("u1", "old")))
	mr.FlushAll()
	// 读者在保存前读到了旧数据, 保存完成后才回填缓存
	read, err := repo.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	require.NoError(t, svc.SaveBundle(ctx, bundleWithPost("u1", "new")))
	svc.cacheBundle(ctx, &UserBundle{UserID: "u1", Posts: json.RawMessage(read.PostsJSON)}, false)

	got, err := svc.GetBundle(ctx, "u1")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"new"}]`, string(got.Posts))
}
