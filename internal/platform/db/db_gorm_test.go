package db

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	propertyadapters "estate_backend/internal/feature/property/adapters"
)

func TestConnectWithRetry_SuccessOnFirstTry(t *testing.T) {
	t.Parallel()

	mockDB := &gorm.DB{}
	attempts := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attempts++
		return mockDB, nil
	}

	db, err := ConnectWithRetry("test-dsn", 5*time.Second, opener)

	require.NoError(t, err)
	assert.Same(t, mockDB, db)
	assert.Equal(t, 1, attempts)
}

func TestConnectWithRetry_RetriesOnFailure(t *testing.T) {
	// Not parallel: shortens the package-level retry interval.
	old := retryInterval
	retryInterval = 10 * time.Millisecond
	t.Cleanup(func() { retryInterval = old })

	mockDB := &gorm.DB{}
	attempts := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("connection refused")
		}
		return mockDB, nil
	}

	db, err := ConnectWithRetry("test-dsn", 5*time.Second, opener)

	require.NoError(t, err)
	assert.Same(t, mockDB, db)
	assert.Equal(t, 3, attempts)
}

func TestConnectWithRetry_TimeoutAfterRetries(t *testing.T) {
	t.Parallel()

	attempts := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attempts++
		return nil, errors.New("connection refused")
	}

	_, err := ConnectWithRetry("test-dsn", -time.Second, opener)

	assert.ErrorContains(t, err, "connection refused")
	assert.Equal(t, 1, attempts)
}

func TestSQLiteOpener_MigrateAndPing(t *testing.T) {
	t.Parallel()

	db, err := SQLiteOpener(":memory:")
	require.NoError(t, err)

	require.NoError(t, Migrate(db))
	assert.NoError(t, Ping(context.Background(), db))

	for _, table := range []string{"users", "owned_residencies", "user_relations", "properties"} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
}

func TestGormLogger_SkipsRecordNotFound(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: newGormLogger(log.New(&buf, "", 0))})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	var m propertyadapters.PropertyModel
	err = db.First(&m, "id = ?", "missing").Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	var n int
	err = db.Raw("SELECT count(*) FROM no_such_table").Scan(&n).Error
	require.Error(t, err)
	assert.Contains(t, buf.String(), "no_such_table")
}
