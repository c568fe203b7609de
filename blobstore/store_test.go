package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exercise runs the shared BlobStore contract against a backend.
func exercise(t *testing.T, store BlobStore) {
	ctx := context.Background()

	t.Run("missing blob", func(t *testing.T) {
		_, err := store.Open(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("put then open", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "a/one", []byte("payload one")))

		b, err := store.Open(ctx, "a/one")
		require.NoError(t, err)
		defer b.Close()

		assert.Equal(t, int64(11), b.Size())
		data, err := ReadAll(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, []byte("payload one"), data)
	})

	t.Run("read at offset", func(t *testing.T) {
		b, err := store.Open(ctx, "a/one")
		require.NoError(t, err)
		defer b.Close()

		p := make([]byte, 3)
		n, err := b.ReadAt(ctx, p, 8)
		if err != nil {
			require.ErrorIs(t, err, io.EOF)
		}
		assert.Equal(t, 3, n)
		assert.Equal(t, []byte("one"), p)

		_, err = b.ReadAt(ctx, p, 100)
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("read range", func(t *testing.T) {
		b, err := store.Open(ctx, "a/one")
		require.NoError(t, err)
		defer b.Close()

		rc, err := b.ReadRange(ctx, 0, 7)
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), data)
	})

	t.Run("streaming create", func(t *testing.T) {
		w, err := store.Create(ctx, "a/two")
		require.NoError(t, err)
		_, err = w.Write([]byte("part1 "))
		require.NoError(t, err)
		_, err = w.Write([]byte("part2"))
		require.NoError(t, err)
		require.NoError(t, w.Sync())
		require.NoError(t, w.Close())

		b, err := store.Open(ctx, "a/two")
		require.NoError(t, err)
		defer b.Close()
		data, err := ReadAll(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, []byte("part1 part2"), data)
	})

	t.Run("list", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "b/three", []byte("x")))

		names, err := store.List(ctx, "a/")
		require.NoError(t, err)
		assert.Equal(t, []string{"a/one", "a/two"}, names)

		all, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"a/one", "a/two", "b/three"}, all)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "b/three"))
		_, err := store.Open(ctx, "b/three")
		assert.ErrorIs(t, err, ErrNotFound)

		assert.NoError(t, store.Delete(ctx, "b/three"))
	})
}

func TestMemoryStore(t *testing.T) {
	exercise(t, NewMemoryStore())
}

func TestLocalStore(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	exercise(t, store)
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte("original")
	require.NoError(t, store.Put(ctx, "blob", data))
	data[0] = 'X'

	b, err := store.Open(ctx, "blob")
	require.NoError(t, err)
	got, err := ReadAll(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), got)
}
