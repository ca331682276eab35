// Package store persists table mappings keyed by their lower-cased name.
package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Rana718/jsonsql/internal/types"
	"github.com/rs/zerolog"
)

type Store interface {
	// Get returns types.ErrMappingNotFound when no mapping has the name.
	Get(ctx context.Context, name string) (types.TableMapping, error)
	// List returns every mapping sorted by key.
	List(ctx context.Context) ([]types.TableMapping, error)
	// Put validates and saves m, replacing any mapping with the same key.
	Put(ctx context.Context, m types.TableMapping) error
	Delete(ctx context.Context, name string) error
	Close() error
}

type Options struct {
	Provider     string
	StoragePath  string
	DefaultsPath string
	DatabaseURL  string
}

// New builds the backend selected by opts.Provider and wraps it in a Cache
// seeded from opts.DefaultsPath.
func New(ctx context.Context, opts Options, log zerolog.Logger) (*Cache, error) {
	var (
		backend Store
		err     error
	)

	switch strings.ToLower(opts.Provider) {
	case "", "file":
		backend, err = NewFile(opts.StoragePath)
	case "memory":
		backend = NewMemory()
	case "sqlite", "sqlite3", "postgresql", "postgres", "pq", "mysql":
		if opts.DatabaseURL == "" {
			return nil, fmt.Errorf("store provider %s requires a database URL", opts.Provider)
		}
		backend, err = OpenSQL(ctx, opts.Provider, opts.DatabaseURL)
	default:
		return nil, fmt.Errorf("unsupported store provider: %s", opts.Provider)
	}
	if err != nil {
		return nil, err
	}

	cache := NewCache(backend, log)
	if opts.DefaultsPath != "" {
		if _, err := cache.Seed(opts.DefaultsPath); err != nil {
			backend.Close()
			return nil, err
		}
	}
	return cache, nil
}

func sortMappings(ms []types.TableMapping) []types.TableMapping {
	sort.Slice(ms, func(i, j int) bool {
		return ms[i].Key() < ms[j].Key()
	})
	return ms
}
