package docstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	ID  string `json:"id"`
	Qty int    `json:"qty"`
}

func newFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	return store, dir
}

func Test_FileStore_CreatesDirectory(t *testing.T) {
	// given
	dir := filepath.Join(t.TempDir(), "nested", "store")
	// when
	_, err := NewFileStore(dir)
	// then
	require.NoError(t, err)
	info, statErr := os.Stat(dir)
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())
}

func Test_FileStore_Load_MissingDocument(t *testing.T) {
	// given
	store, _ := newFileStore(t)
	docs := make([]doc, 0)
	// when
	err := store.Load(context.Background(), "nobody", &docs)
	// then
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func Test_FileStore_SaveLoad_RoundTrip(t *testing.T) {
	// given
	store, _ := newFileStore(t)
	in := []doc{{ID: "p1", Qty: 2}, {ID: "p2", Qty: 1}}
	// when
	require.NoError(t, store.Save(context.Background(), "user_example_com", in))
	out := make([]doc, 0)
	require.NoError(t, store.Load(context.Background(), "user_example_com", &out))
	// then
	assert.Equal(t, in, out)
}

func Test_FileStore_Save_PrettyPrinted(t *testing.T) {
	// given
	store, dir := newFileStore(t)
	// when
	require.NoError(t, store.Save(context.Background(), "key", []doc{{ID: "p1", Qty: 1}}))
	// then
	data, err := os.ReadFile(filepath.Join(dir, "key.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  {")
}

func Test_FileStore_Load_Corrupted(t *testing.T) {
	// given
	store, dir := newFileStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644))
	// when
	docs := make([]doc, 0)
	err := store.Load(context.Background(), "bad", &docs)
	// then
	assert.ErrorIs(t, err, ErrCorrupted)
}

func Test_FileStore_Load_EmptyFile(t *testing.T) {
	// given
	store, dir := newFileStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.json"), nil, 0o644))
	// when
	docs := make([]doc, 0)
	err := store.Load(context.Background(), "empty", &docs)
	// then
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func Test_FileStore_Keys(t *testing.T) {
	// given
	store, dir := newFileStore(t)
	require.NoError(t, store.Save(context.Background(), "alice", []doc{}))
	require.NoError(t, store.Save(context.Background(), "bob", []doc{}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	// when
	keys, err := store.Keys(context.Background())
	// then
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, keys)
}

func Test_MemStore_MatchesContract(t *testing.T) {
	// given
	store := NewMemStore()
	// missing document reads as empty
	docs := make([]doc, 0)
	require.NoError(t, store.Load(context.Background(), "nobody", &docs))
	assert.Empty(t, docs)

	// round trip
	require.NoError(t, store.Save(context.Background(), "alice", []doc{{ID: "p1", Qty: 3}}))
	out := make([]doc, 0)
	require.NoError(t, store.Load(context.Background(), "alice", &out))
	assert.Equal(t, []doc{{ID: "p1", Qty: 3}}, out)

	// corruption surfaces as ErrCorrupted
	store.Corrupt("alice")
	err := store.Load(context.Background(), "alice", &out)
	assert.ErrorIs(t, err, ErrCorrupted)

	// keys
	require.NoError(t, store.Save(context.Background(), "bob", []doc{}))
	keys, err := store.Keys(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, keys)
}
