// Package localcache 后端不可达时使用的本地用户快照
package localcache

import (
	"classroom_backend/pkg/classroom"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var snapshotBucket = []byte("snapshots")

// Key 用户快照的带命名空间键名
func Key(userID string) string {
	return "classroom-state-" + userID
}

// BoltCache 在 bbolt 文件中为每个用户存一份 JSON 快照
type BoltCache struct {
	db *bbolt.DB
}

func OpenBolt(path string) (*BoltCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(snapshotBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltCache{db: db}, nil
}

func (c *BoltCache) Close() error {
	return c.db.Close()
}

// Load 没有快照时返回 classroom.ErrBundleNotFound, 数据损坏时返回解码错误
func (c *BoltCache) Load(userID string) (classroom.Bundle, error) {
	var raw []byte
	err := c.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(snapshotBucket).Get([]byte(Key(userID))); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return classroom.Bundle{}, err
	}
	if raw == nil {
		return classroom.Bundle{}, classroom.ErrBundleNotFound
	}
	return decode(raw)
}

func (c *BoltCache) Save(userID string, b classroom.Bundle) error {
	data, err := json.Marshal(b)
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(snapshotBucket).Put([]byte(Key(userID)), data)
	})
}

// PutRaw 原样写入字节, 用于导入其他客户端写的快照
func (c *BoltCache) PutRaw(userID string, data []byte) error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(snapshotBucket).Put([]byte(Key(userID)), data)
	})
}

func (c *BoltCache) Delete(userID string) error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(snapshotBucket).Delete([]byte(Key(userID)))
	})
}

func decode(raw []byte) (classroom.Bundle, error) {
	var b classroom.Bundle
	if err := json.Unmarshal(raw, &b); err != nil {
		return classroom.Bundle{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return b, nil
}
