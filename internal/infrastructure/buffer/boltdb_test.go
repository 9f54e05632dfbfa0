package buffer

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fastygo/kanban/internal/infrastructure/boltdb"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	db, err := boltdb.Open(filepath.Join(t.TempDir(), "nested", "kanban.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := New(db, "")
	require.NoError(t, err)
	return store
}

func TestStoreQueuesOldestFirst(t *testing.T) {
	store := openStore(t)
	base := time.Now()

	for i, data := range []string{`{"n":1}`, `{"n":2}`, `{"n":3}`} {
		require.NoError(t, store.Enqueue(Item{
			Namespace: "board",
			Data:      json.RawMessage(data),
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}))
	}

	size, err := store.Size()
	require.NoError(t, err)
	require.Equal(t, 3, size)

	items, err := store.GetBatch(2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.JSONEq(t, `{"n":1}`, string(items[0].Data))
	require.JSONEq(t, `{"n":2}`, string(items[1].Data))
	require.NotEmpty(t, items[0].ID)

	require.NoError(t, store.Remove(items[0]))
	items[1].Retries = 2
	require.NoError(t, store.Update(items[1]))

	items, err = store.GetBatch(0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, 2, items[0].Retries)
	require.JSONEq(t, `{"n":3}`, string(items[1].Data))
}

func TestStoreRemoveByID(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.Enqueue(Item{ID: "snap-1", Data: json.RawMessage(`{}`)}))

	require.NoError(t, store.Remove(Item{ID: "snap-1"}))
	size, err := store.Size()
	require.NoError(t, err)
	require.Zero(t, size)
}

func TestCleanupKeepsNewestSnapshot(t *testing.T) {
	store := openStore(t)
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, store.Enqueue(Item{ID: "a", Data: json.RawMessage(`{}`), Timestamp: old}))
	require.NoError(t, store.Enqueue(Item{ID: "b", Data: json.RawMessage(`{}`), Timestamp: old.Add(time.Minute)}))

	require.NoError(t, store.Cleanup(time.Now()))

	items, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "b", items[0].ID)
}

func TestStoreNewest(t *testing.T) {
	store := openStore(t)

	_, ok, err := store.Newest()
	require.NoError(t, err)
	require.False(t, ok)

	base := time.Now()
	require.NoError(t, store.Enqueue(Item{Data: json.RawMessage(`"old"`), Timestamp: base}))
	require.NoError(t, store.Enqueue(Item{Data: json.RawMessage(`"new"`), Timestamp: base.Add(time.Second)}))

	item, ok, err := store.Newest()
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `"new"`, string(item.Data))

	require.NoError(t, store.Remove(item))
	size, err := store.Size()
	require.NoError(t, err)
	require.Equal(t, 1, size)
}
