package store_test

import (
	"testing"

	"github.com/insuvit/storefront/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	kv := store.NewMemoryStore()
	ctx := t.Context()
	value := testBlob{Field1: "v", Field2: 7}

	require.NoError(t, kv.Save(ctx, "k", value))

	var result testBlob

	found, err := kv.Load(ctx, "k", &result)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, value, result)

	require.NoError(t, kv.Delete(ctx, "k"))

	found, err = kv.Load(ctx, "k", &result)
	require.NoError(t, err)
	assert.False(t, found)
}
