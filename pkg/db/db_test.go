package db

import (
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/smallbiznis/recibo/internal/config"
)

func TestDialectUnsupported(t *testing.T) {
	_, err := Dialect(config.Config{DBType: "oracle"})
	assert.Error(t, err)

	d, err := Dialect(config.Config{DBType: "postgres"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())
}

func TestOpenAppliesPool(t *testing.T) {
	conn, err := Open(sqlite.Open("file::memory:"), &gorm.Config{}, PoolConfig{MaxOpenConn: 3})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	assert.Equal(t, 3, sqlDB.Stats().MaxOpenConnections)
}

func TestIsDuplicateKeyErr(t *testing.T) {
	assert.False(t, IsDuplicateKeyErr(nil))
	assert.True(t, IsDuplicateKeyErr(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKeyErr(errors.New("UNIQUE constraint failed: receipts.receipt_number")))
	assert.True(t, IsDuplicateKeyErr(errors.New("Error 1062: Duplicate entry")))
	assert.False(t, IsDuplicateKeyErr(errors.New("connection refused")))
}

func TestGormLoggerConfigUsesSlowQuery(t *testing.T) {
	assert.Equal(t, 200*time.Millisecond, gormLoggerConfig(config.Config{}).SlowQuery)
	assert.Equal(t, time.Second, gormLoggerConfig(config.Config{DBSlowQuery: time.Second}).SlowQuery)
}
