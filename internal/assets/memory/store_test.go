package memory

import (
	"context"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCopiesData(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(nil)
	payload := []byte("content")
	require.NoError(t, store.Write(ctx, "public/og-img.png", payload))
	payload[0] = 'C'

	got, err := store.Read(ctx, "public/og-img.png")
	require.NoError(t, err)
	assert.Equal(t, "content", string(got))

	got[0] = 'X'
	again, err := store.Read(ctx, "public/og-img.png")
	require.NoError(t, err)
	assert.Equal(t, "content", string(again))
}

func TestStoreSeedAndExists(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(map[string]string{"./app/layout.tsx": "title: 'x'"})
	assert.True(t, store.Exists(ctx, "app/layout.tsx"))
	assert.False(t, store.Exists(ctx, "src/app/layout.tsx"))

	_, err := store.Read(ctx, "src/app/layout.tsx")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
