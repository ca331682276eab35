package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Rana718/jsonsql/internal/mapping"
	"github.com/Rana718/jsonsql/internal/types"
)

// File keeps one pretty-printed <tableName>.json document per mapping in a
// directory. YAML documents placed there by hand are read as well.
type File struct {
	mu  sync.RWMutex
	dir string
}

func NewFile(dir string) (*File, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("file store requires a storage path")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}
	return &File{dir: dir}, nil
}

func (f *File) Dir() string { return f.dir }

func (f *File) Get(_ context.Context, name string) (types.TableMapping, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	paths, err := f.pathsFor(types.MappingKey(name))
	if err != nil {
		return types.TableMapping{}, err
	}
	if len(paths) == 0 {
		return types.TableMapping{}, types.NewNotFoundError(name)
	}
	return mapping.LoadFile(paths[0])
}

// List skips documents that fail to load rather than failing the listing.
func (f *File) List(_ context.Context) ([]types.TableMapping, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	entries, err := f.documents()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(entries))
	out := make([]types.TableMapping, 0, len(entries))
	for _, path := range entries {
		t, err := mapping.LoadFile(path)
		if err != nil {
			continue
		}
		if seen[t.Key()] {
			continue
		}
		seen[t.Key()] = true
		out = append(out, t)
	}
	return sortMappings(out), nil
}

func (f *File) Put(_ context.Context, t types.TableMapping) error {
	if err := t.Validate(); err != nil {
		return err
	}

	stem := strings.TrimSpace(t.Name)
	if strings.ContainsAny(stem, `/\`) || stem == "." || stem == ".." {
		return types.NewMappingError("table name %q cannot be used as a file name", t.Name)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	target := filepath.Join(f.dir, fileName(t.Name))
	existing, err := f.pathsFor(t.Key())
	if err != nil {
		return err
	}
	if err := mapping.SaveFile(target, t); err != nil {
		return err
	}
	targetInfo, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat mapping file %s: %w", target, err)
	}
	for _, path := range existing {
		info, err := os.Stat(path)
		if err != nil || os.SameFile(info, targetInfo) {
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove stale mapping file %s: %w", path, err)
		}
	}
	return nil
}

func (f *File) Delete(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	paths, err := f.pathsFor(types.MappingKey(name))
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return types.NewNotFoundError(name)
	}
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to delete mapping file %s: %w", path, err)
		}
	}
	return nil
}

func (f *File) Close() error { return nil }

// pathsFor returns every document whose file name matches key, the JSON one
// first.
func (f *File) pathsFor(key string) ([]string, error) {
	entries, err := f.documents()
	if err != nil {
		return nil, err
	}

	var jsonPaths, otherPaths []string
	for _, path := range entries {
		base := filepath.Base(path)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		if types.MappingKey(stem) != key {
			continue
		}
		if mapping.FormatFromPath(path) == mapping.FormatJSON {
			jsonPaths = append(jsonPaths, path)
		} else {
			otherPaths = append(otherPaths, path)
		}
	}
	return append(jsonPaths, otherPaths...), nil
}

func (f *File) documents() ([]string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read storage directory %s: %w", f.dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !mapping.IsMappingFile(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(f.dir, e.Name()))
	}
	return paths, nil
}

func fileName(tableName string) string {
	return strings.TrimSpace(tableName) + ".json"
}
