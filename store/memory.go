package store

import (
	"context"
	"sync"
)

// MemorySlot はプロセス内にのみ保持するSlotの実装です。
type MemorySlot struct {
	mu    sync.Mutex
	slots map[string][]byte
}

// NewMemorySlot は空のMemorySlotを作成します。
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{slots: make(map[string][]byte)}
}

func (m *MemorySlot) Get(ctx context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payload, ok := m.slots[name]
	if !ok {
		return nil, ErrSlotEmpty
	}
	return append([]byte(nil), payload...), nil
}

func (m *MemorySlot) Put(ctx context.Context, name string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[name] = append([]byte(nil), payload...)
	return nil
}

func (m *MemorySlot) Close() error {
	return nil
}
