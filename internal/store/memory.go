package store

import (
	"context"
	"sync"

	"github.com/Rana718/jsonsql/internal/types"
)

type Memory struct {
	mu       sync.RWMutex
	mappings map[string]types.TableMapping
}

func NewMemory() *Memory {
	return &Memory{mappings: make(map[string]types.TableMapping)}
}

func (m *Memory) Get(_ context.Context, name string) (types.TableMapping, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.mappings[types.MappingKey(name)]
	if !ok {
		return types.TableMapping{}, types.NewNotFoundError(name)
	}
	return t, nil
}

func (m *Memory) List(_ context.Context) ([]types.TableMapping, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.TableMapping, 0, len(m.mappings))
	for _, t := range m.mappings {
		out = append(out, t)
	}
	return sortMappings(out), nil
}

func (m *Memory) Put(_ context.Context, t types.TableMapping) error {
	if err := t.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.mappings[t.Key()] = t
	return nil
}

func (m *Memory) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := types.MappingKey(name)
	if _, ok := m.mappings[key]; !ok {
		return types.NewNotFoundError(name)
	}
	delete(m.mappings, key)
	return nil
}

func (m *Memory) Close() error { return nil }
