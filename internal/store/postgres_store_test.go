package store_test

import (
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/insuvit/storefront/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPostgres(t *testing.T) (store.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	return store.NewPostgresStoreWithDB(db), mock
}

func TestPostgresStore_Save(t *testing.T) {
	ctx := t.Context()
	value := testBlob{Field1: "value1", Field2: 123}
	jsonData, err := json.Marshal(value)
	require.NoError(t, err)

	t.Run("Success - upsert", func(t *testing.T) {
		kv, mock := setupPostgres(t)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO kv_entries")).
			WithArgs("insuvit:cart:o1", jsonData).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := kv.Save(ctx, "insuvit:cart:o1", value)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - database error", func(t *testing.T) {
		kv, mock := setupPostgres(t)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO kv_entries")).
			WithArgs("insuvit:cart:o1", jsonData).
			WillReturnError(errors.New("connection reset"))

		err := kv.Save(ctx, "insuvit:cart:o1", value)

		require.Error(t, err)
	})
}

func TestPostgresStore_Load(t *testing.T) {
	ctx := t.Context()
	value := testBlob{Field1: "value1", Field2: 123}
	jsonData, err := json.Marshal(value)
	require.NoError(t, err)

	t.Run("Success - key found", func(t *testing.T) {
		kv, mock := setupPostgres(t)

		var result testBlob

		rows := sqlmock.NewRows([]string{"value"}).AddRow(jsonData)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv_entries")).
			WithArgs("insuvit:user:o1").
			WillReturnRows(rows)

		found, err := kv.Load(ctx, "insuvit:user:o1", &result)

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, value, result)
	})

	t.Run("Success - key absent", func(t *testing.T) {
		kv, mock := setupPostgres(t)

		var result testBlob

		mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv_entries")).
			WithArgs("insuvit:user:o1").
			WillReturnError(sql.ErrNoRows)

		found, err := kv.Load(ctx, "insuvit:user:o1", &result)

		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestPostgresStore_Delete(t *testing.T) {
	ctx := t.Context()

	kv, mock := setupPostgres(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM kv_entries")).
		WithArgs("insuvit:wishlist:o1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := kv.Delete(ctx, "insuvit:wishlist:o1")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "insuvit:cart:abc", store.CartKey("abc"))
	assert.Equal(t, "insuvit:wishlist:abc", store.WishlistKey("abc"))
	assert.Equal(t, "insuvit:user:abc", store.SessionKey("abc"))
}
