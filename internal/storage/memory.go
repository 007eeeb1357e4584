// Package storage содержит встроенное key-value хранилище состояния
// авторизации. Интерфейс повторяет redis-кеш, поэтому сервисы работают
// с любым из двух бэкендов.
package storage

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

// Memory потокобезопасное хранилище в памяти процесса. Используется
// в тестовом режиме вместо redis.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemory создает пустое хранилище.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get читает значение по ключу. Возвращает false, если ключа нет
// или срок его жизни истёк.
func (m *Memory) Get(key string, result any) (bool, error) {
	const op = "storage.Get"

	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if !e.expiresAt.IsZero() && m.now().After(e.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return false, nil
	}
	if err := json.Unmarshal(e.data, result); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Set сохраняет значение по ключу. Нулевой TTL означает хранение
// без ограничения срока.
func (m *Memory) Set(key string, value any, expiration time.Duration) error {
	const op = "storage.Set"

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var expiresAt time.Time
	if expiration > 0 {
		expiresAt = m.now().Add(expiration)
	}

	m.mu.Lock()
	m.entries[key] = entry{data: data, expiresAt: expiresAt}
	m.mu.Unlock()
	return nil
}

// Invalidate удаляет ключ.
func (m *Memory) Invalidate(key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}
