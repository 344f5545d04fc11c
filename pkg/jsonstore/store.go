// Package jsonstore persists record collections as standalone JSON documents,
// one pretty-printed file per collection. Every save rewrites the whole file;
// there is no partial write. Writers within the process are serialized per
// collection, but the files carry no cross-process locking, so external
// writers still race last-write-wins.
package jsonstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Collection is a slice of records backed by a single JSON file.
type Collection[T any] struct {
	path   string
	mu     sync.Mutex
	logger *zap.Logger
}

// NewCollection binds a collection to dir/name. The file is created lazily on
// the first save.
func NewCollection[T any](dir, name string, logger *zap.Logger) *Collection[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collection[T]{path: filepath.Join(dir, name), logger: logger}
}

// Path returns the backing file path.
func (c *Collection[T]) Path() string { return c.path }

// Load reads the whole collection. A missing file is an empty collection.
func (c *Collection[T]) Load() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

// Save rewrites the backing file with the whole collection.
func (c *Collection[T]) Save(records []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(records)
}

// Update loads the collection, applies fn, and saves the result, holding the
// collection lock for the whole cycle. When fn returns an error nothing is
// written and the error is returned as-is for the caller to classify.
func (c *Collection[T]) Update(fn func(records []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	records, err := c.load()
	if err != nil {
		return err
	}
	records, err = fn(records)
	if err != nil {
		return err
	}
	return c.save(records)
}

func (c *Collection[T]) load() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.path, err)
	}
	return records, nil
}

func (c *Collection[T]) save(records []T) error {
	if records == nil {
		records = []T{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	// Keep accented text and markup in record fields byte-for-byte.
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode %s: %w", c.path, err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(c.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", c.path, err)
	}
	c.logger.Debug("collection saved", zap.String("path", c.path), zap.Int("records", len(records)))
	return nil
}
