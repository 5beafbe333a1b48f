// Package store provides Storage implementations.
package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/warp/finance-ledger/ledger"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu    sync.RWMutex
	slots map[string]json.RawMessage
}

func NewMemory() *Memory {
	return &Memory{slots: make(map[string]json.RawMessage)}
}

func (m *Memory) LoadSlot(_ context.Context, slot string, v any) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.slots[slot]
	if !ok {
		return ledger.ErrSlotNotFound
	}
	return json.Unmarshal(data, v)
}

func (m *Memory) SaveSlot(_ context.Context, slot string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[slot] = data
	return nil
}

// Corrupt overwrites a slot with unparsable bytes. Test helper for the
// load-or-default recovery path.
func (m *Memory) Corrupt(slot string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[slot] = json.RawMessage(`{not json`)
}

// Has reports whether a slot has been written.
func (m *Memory) Has(slot string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.slots[slot]
	return ok
}
