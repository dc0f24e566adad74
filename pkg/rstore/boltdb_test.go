package rstore_test

import (
	"encoding/json"
	"testing"

	"github.com/cuemby/syzygo/pkg/rstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGetRoundTrip(t *testing.T) {
	store, err := rstore.NewBoltSnapshotStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	key, err := store.Put("v1", map[string]int{"n": 42})
	require.NoError(t, err)
	assert.Equal(t, "v1", key)

	data, err := store.Get("v1")
	require.NoError(t, err)

	var got map[string]int
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, 42, got["n"])
}

func TestPutGeneratesKeyWhenEmpty(t *testing.T) {
	store, err := rstore.NewBoltSnapshotStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	key, err := store.Put("", 1)
	require.NoError(t, err)
	assert.NotEmpty(t, key)
}

func TestListAndDelete(t *testing.T) {
	store, err := rstore.NewBoltSnapshotStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Put("a", 1)
	require.NoError(t, err)
	_, err = store.Put("b", 2)
	require.NoError(t, err)

	keys, err := store.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, keys)

	require.NoError(t, store.Delete("a"))
	keys, err = store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, keys)
}
