package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Rana718/jsonsql/internal/mapping"
	"github.com/Rana718/jsonsql/internal/types"
	"github.com/rs/zerolog"
)

// Cache is a read-through cache in front of another Store. Mappings seeded from
// a defaults directory live only in the cache and are never written through.
type Cache struct {
	mu       sync.RWMutex
	backend  Store
	mappings map[string]types.TableMapping
	// gen changes on every write so an in-flight read-through can tell that
	// its backend result may be stale.
	gen uint64
	log zerolog.Logger
}

func NewCache(backend Store, log zerolog.Logger) *Cache {
	return &Cache{
		backend:  backend,
		mappings: make(map[string]types.TableMapping),
		log:      log.With().Str("component", "store").Logger(),
	}
}

// Seed loads every mapping document found in dir into the cache. A missing
// directory is not an error; documents that fail to load are logged and
// skipped. It returns the number of mappings loaded.
func (c *Cache) Seed(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.log.Debug().Str("path", dir).Msg("no default table mappings found")
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read defaults directory %s: %w", dir, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	loaded := 0
	for _, e := range entries {
		if e.IsDir() || !mapping.IsMappingFile(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		t, err := mapping.LoadFile(path)
		if err != nil {
			c.log.Warn().Err(err).Str("file", e.Name()).Msg("failed to load default table mapping")
			continue
		}
		c.mappings[t.Key()] = t
		loaded++
		c.log.Info().Str("table", t.Name).Msg("loaded default table mapping")
	}
	return loaded, nil
}

func (c *Cache) Get(ctx context.Context, name string) (types.TableMapping, error) {
	key := types.MappingKey(name)

	c.mu.RLock()
	t, ok := c.mappings[key]
	gen := c.gen
	c.mu.RUnlock()
	if ok {
		return t, nil
	}

	t, err := c.backend.Get(ctx, name)
	if err != nil {
		return types.TableMapping{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.mappings[key]; ok {
		return cached, nil
	}
	if c.gen == gen {
		c.mappings[key] = t
	}
	return t, nil
}

// List refreshes the cache from the backend and returns everything it holds.
func (c *Cache) List(ctx context.Context) ([]types.TableMapping, error) {
	c.mu.RLock()
	gen := c.gen
	c.mu.RUnlock()

	stored, err := c.backend.List(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	merged := c.mappings
	if c.gen != gen {
		// a write raced the backend read: answer from a copy, keep the cache as is
		merged = make(map[string]types.TableMapping, len(c.mappings)+len(stored))
		for k, t := range c.mappings {
			merged[k] = t
		}
	}
	for _, t := range stored {
		if _, ok := merged[t.Key()]; !ok || c.gen == gen {
			merged[t.Key()] = t
		}
	}
	out := make([]types.TableMapping, 0, len(merged))
	for _, t := range merged {
		out = append(out, t)
	}
	return sortMappings(out), nil
}

func (c *Cache) Put(ctx context.Context, t types.TableMapping) error {
	if err := c.backend.Put(ctx, t); err != nil {
		return err
	}

	c.mu.Lock()
	c.mappings[t.Key()] = t
	c.gen++
	c.mu.Unlock()

	c.log.Info().Str("table", t.Name).Msg("saved table mapping")
	return nil
}

// Delete evicts the mapping and removes it from the backend. Only when neither
// held it is types.ErrMappingNotFound returned.
func (c *Cache) Delete(ctx context.Context, name string) error {
	key := types.MappingKey(name)

	c.mu.Lock()
	_, cached := c.mappings[key]
	delete(c.mappings, key)
	c.gen++
	c.mu.Unlock()

	err := c.backend.Delete(ctx, name)
	if err != nil && !(cached && errors.Is(err, types.ErrMappingNotFound)) {
		return err
	}

	c.log.Info().Str("table", name).Msg("deleted table mapping")
	return nil
}

// Invalidate drops every cached mapping, seeded defaults included.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.mappings = make(map[string]types.TableMapping)
	c.gen++
	c.mu.Unlock()
}

func (c *Cache) Close() error {
	return c.backend.Close()
}
