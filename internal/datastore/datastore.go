// Package datastore is the key-value settings store generators read their
// options from.
package datastore

import "sync"

// Store reads string settings. Missing keys yield defaultValue.
type Store interface {
	GetDataValue(key, defaultValue string) string
}

// Writer persists settings.
type Writer interface {
	SetDataValue(key, value string) error
	RemoveDataValue(key string) error
}

// Memory is an in-process Store.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemory(values map[string]string) *Memory {
	m := &Memory{values: make(map[string]string, len(values))}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

func (m *Memory) GetDataValue(key, defaultValue string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.values[key]; ok {
		return v
	}
	return defaultValue
}

func (m *Memory) SetDataValue(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}

func (m *Memory) RemoveDataValue(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Bool reads a boolean setting. Only the exact value "true" is true; the
// default is used when the key is missing.
func Bool(s Store, key string, defaultValue bool) bool {
	def := "false"
	if defaultValue {
		def = "true"
	}
	return s.GetDataValue(key, def) == "true"
}
