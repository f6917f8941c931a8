package io

import (
	"context"
	"os"
	"sync"

	"github.com/OFFIS-RIT/storyboard/backend/pkg/loader"

	"golang.org/x/sync/singleflight"
)

// IOProjectFileLoader loads files directly from the local filesystem with caching.
type IOProjectFileLoader struct {
	cache   map[string][]byte
	cacheMu sync.RWMutex
	group   singleflight.Group
	reads   int
}

// NewIOProjectFileLoader creates a new filesystem-based file loader.
func NewIOProjectFileLoader() *IOProjectFileLoader {
	return &IOProjectFileLoader{
		cache: make(map[string][]byte),
	}
}

// GetFileBytes reads the file content from the filesystem. Results are cached
// and concurrent reads of the same file share one disk read.
func (l *IOProjectFileLoader) GetFileBytes(ctx context.Context, file loader.ProjectFile) ([]byte, error) {
	key := loader.CacheKey(file)

	l.cacheMu.RLock()
	if cached, ok := l.cache[key]; ok {
		l.cacheMu.RUnlock()
		return cached, nil
	}
	l.cacheMu.RUnlock()

	result, err, _ := l.group.Do(key, func() (any, error) {
		l.cacheMu.RLock()
		if cached, ok := l.cache[key]; ok {
			l.cacheMu.RUnlock()
			return cached, nil
		}
		l.cacheMu.RUnlock()

		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err := os.ReadFile(file.FilePath)
		if err != nil {
			return nil, err
		}

		l.cacheMu.Lock()
		l.cache[key] = result
		l.reads++
		l.cacheMu.Unlock()

		return result, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}
