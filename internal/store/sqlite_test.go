package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLiteCollectionRoundtrip(t *testing.T) {
	db := openTestSQLite(t)
	coll, err := db.Collection("site_configs")
	require.NoError(t, err)
	ctx := context.Background()

	records, err := coll.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	require.NoError(t, coll.Append(ctx, json.RawMessage(`{"id":1}`)))
	require.NoError(t, coll.Append(ctx, json.RawMessage(`{"id":2}`)))

	records, err = coll.All(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal(records[0], &first))
	assert.Equal(t, float64(1), first["id"])
}

func TestSQLiteCollectionNameValidation(t *testing.T) {
	db := openTestSQLite(t)

	_, err := db.Collection("users; DROP TABLE users")
	assert.Error(t, err)

	_, err = db.Collection("users")
	assert.NoError(t, err)
}
