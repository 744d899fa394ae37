package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileCollection persists records as one JSON array serialized to a
// file. Every append reads the whole collection, adds the record in
// memory, and rewrites the whole file via a temp file and rename, so
// a crash mid-write leaves the previous state untouched. A per-store
// mutex serializes writers; without it two concurrent appends would
// both read the same prior array and the second save would clobber
// the first.
type FileCollection struct {
	path string
	mu   sync.Mutex
}

func NewFileCollection(path string) *FileCollection {
	return &FileCollection{path: path}
}

func (c *FileCollection) All(ctx context.Context) ([]json.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readAll()
}

func (c *FileCollection) Append(ctx context.Context, record json.RawMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.readAll()
	if err != nil {
		return err
	}
	records = append(records, record)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}
	return c.writeFile(data)
}

// readAll treats a missing file as an empty collection; any other
// read failure is fatal for the request.
func (c *FileCollection) readAll() ([]json.RawMessage, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read collection %s: %w", c.path, err)
	}
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", c.path, err)
	}
	return records, nil
}

func (c *FileCollection) writeFile(data []byte) error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write collection: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace collection %s: %w", c.path, err)
	}
	return nil
}
