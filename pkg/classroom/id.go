package classroom

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator 分配实体 id; prefix 如 "p", "n" 只是便于阅读, 可以忽略
type IDGenerator interface {
	NewID(prefix string) string
}

// UUIDGenerator 返回随机 v4 UUID, 忽略 prefix
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(string) string {
	return uuid.NewString()
}

// Counter 返回 prefix 加递增序号, 并发安全, 用于测试和演示
type Counter struct {
	n atomic.Uint64
}

func NewCounter(start uint64) *Counter {
	c := &Counter{}
	c.n.Store(start)
	return c
}

func (c *Counter) NewID(prefix string) string {
	return prefix + strconv.FormatUint(c.n.Add(1), 10)
}
