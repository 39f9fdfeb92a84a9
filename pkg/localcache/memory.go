package localcache

import (
	"classroom_backend/pkg/classroom"
	"encoding/json"
	"sync"
)

// Memory 用 map 保存快照, 存编码后的值以免调用方共享引用
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Load(userID string) (classroom.Bundle, error) {
	m.mu.RLock()
	raw, ok := m.data[Key(userID)]
	m.mu.RUnlock()
	if !ok {
		return classroom.Bundle{}, classroom.ErrBundleNotFound
	}
	return decode(raw)
}

func (m *Memory) Save(userID string, b classroom.Bundle) error {
	data, err := json.Marshal(b)
	if err != nil {
		return err
	}
	m.PutRaw(userID, data)
	return nil
}

func (m *Memory) PutRaw(userID string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[Key(userID)] = data
}
