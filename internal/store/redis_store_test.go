package store_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/insuvit/storefront/internal/store"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testBlob struct {
	Field1 string `json:"field1"`
	Field2 int    `json:"field2"`
}

func setupRedis(t *testing.T) (store.Store, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()

	return store.NewRedisStore(client), mock
}

func TestRedisStore_Save(t *testing.T) {
	ctx := t.Context()
	value := testBlob{Field1: "value1", Field2: 123}
	jsonData, err := json.Marshal(value)
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		kv, mock := setupRedis(t)
		mock.ExpectSet("insuvit:cart:o1", jsonData, 0).SetVal("OK")

		// Act
		err := kv.Save(ctx, "insuvit:cart:o1", value)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - redis error", func(t *testing.T) {
		kv, mock := setupRedis(t)
		mock.ExpectSet("insuvit:cart:o1", jsonData, 0).SetErr(errors.New("connection refused"))

		err := kv.Save(ctx, "insuvit:cart:o1", value)

		require.Error(t, err)
	})
}

func TestRedisStore_Load(t *testing.T) {
	ctx := t.Context()
	value := testBlob{Field1: "value1", Field2: 123}
	jsonData, err := json.Marshal(value)
	require.NoError(t, err)

	t.Run("Success - key found", func(t *testing.T) {
		kv, mock := setupRedis(t)

		var result testBlob

		mock.ExpectGet("insuvit:wishlist:o1").SetVal(string(jsonData))

		found, err := kv.Load(ctx, "insuvit:wishlist:o1", &result)

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, value, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - key absent", func(t *testing.T) {
		kv, mock := setupRedis(t)

		var result testBlob

		mock.ExpectGet("insuvit:wishlist:o1").SetErr(redis.Nil)

		found, err := kv.Load(ctx, "insuvit:wishlist:o1", &result)

		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, result)
	})

	t.Run("Failure - corrupt payload", func(t *testing.T) {
		kv, mock := setupRedis(t)

		var result testBlob

		mock.ExpectGet("insuvit:wishlist:o1").SetVal("{not-json")

		found, err := kv.Load(ctx, "insuvit:wishlist:o1", &result)

		require.Error(t, err)
		assert.False(t, found)
	})
}

func TestRedisStore_Delete(t *testing.T) {
	ctx := t.Context()

	kv, mock := setupRedis(t)
	mock.ExpectDel("insuvit:user:o1").SetVal(1)

	err := kv.Delete(ctx, "insuvit:user:o1")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
