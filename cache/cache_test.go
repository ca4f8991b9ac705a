package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGet(t *testing.T) {
	store := New(t.TempDir())
	response := []byte("HTTP/1.1 200 OK\r\ncontent-length: 5\r\n\r\nhello")

	require.NoError(t, store.Put("/files/data.txt", response))

	got, hit := store.Get("/files/data.txt")
	assert.True(t, hit)
	assert.Equal(t, response, got)
}

func TestMiss(t *testing.T) {
	store := New(t.TempDir())

	_, hit := store.Get("/files/never-stored")
	assert.False(t, hit)
}

func TestKeysDoNotCollide(t *testing.T) {
	store := New(t.TempDir())

	require.NoError(t, store.Put("/files/a", []byte("a")))
	require.NoError(t, store.Put("/files/b", []byte("b")))

	got, hit := store.Get("/files/a")
	require.True(t, hit)
	assert.Equal(t, []byte("a"), got)

	got, hit = store.Get("/files/b")
	require.True(t, hit)
	assert.Equal(t, []byte("b"), got)
}

func TestOverwrite(t *testing.T) {
	store := New(t.TempDir())

	require.NoError(t, store.Put("/files/a", []byte("old")))
	require.NoError(t, store.Put("/files/a", []byte("new")))

	got, hit := store.Get("/files/a")
	require.True(t, hit)
	assert.Equal(t, []byte("new"), got)
}
