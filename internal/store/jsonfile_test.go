package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCollectionMissingFileReadsEmpty(t *testing.T) {
	coll := NewFileCollection(filepath.Join(t.TempDir(), "absent.json"))

	records, err := coll.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFileCollectionAppendRoundtrip(t *testing.T) {
	coll := NewFileCollection(filepath.Join(t.TempDir(), "records.json"))
	ctx := context.Background()

	require.NoError(t, coll.Append(ctx, json.RawMessage(`{"n":1}`)))
	require.NoError(t, coll.Append(ctx, json.RawMessage(`{"n":2}`)))

	records, err := coll.All(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal(records[0], &first))
	assert.Equal(t, float64(1), first["n"])
}

func TestFileCollectionCorruptFileIsFatal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.json")
	coll := NewFileCollection(path)
	ctx := context.Background()

	require.NoError(t, coll.Append(ctx, json.RawMessage(`{}`)))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := coll.All(ctx)
	assert.Error(t, err)
}

// Two concurrent appends against an initially empty collection must
// both persist: the per-store mutex removes the read-modify-rewrite
// clobbering race of the naive flat-file design.
func TestFileCollectionConcurrentAppendsAllPersist(t *testing.T) {
	coll := NewFileCollection(filepath.Join(t.TempDir(), "records.json"))
	ctx := context.Background()

	const writers = 16
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			record := json.RawMessage(fmt.Sprintf(`{"n":%d}`, n))
			assert.NoError(t, coll.Append(ctx, record))
		}(i)
	}
	wg.Wait()

	records, err := coll.All(ctx)
	require.NoError(t, err)
	assert.Len(t, records, writers, "no append may be lost")
}
