package xcontext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type record struct {
	ID   string `gorm:"primaryKey"`
	Name string
}

func newTestContext(t *testing.T) context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&record{}))
	return WithDB(context.Background(), db)
}

func countRecords(t *testing.T, ctx context.Context) int64 {
	var n int64
	require.NoError(t, DB(ctx).Model(&record{}).Count(&n).Error)
	return n
}

func Test_DBTransaction_Commit(t *testing.T) {
	ctx := newTestContext(t)

	txCtx := WithDBTransaction(ctx)
	defer RollbackDBTransaction(txCtx)

	require.NoError(t, DB(txCtx).Create(&record{ID: "1", Name: "a"}).Error)
	require.NoError(t, CommitDBTransaction(txCtx))

	// Rollback after commit does nothing.
	RollbackDBTransaction(txCtx)
	require.Equal(t, int64(1), countRecords(t, ctx))
}

func Test_DBTransaction_Rollback(t *testing.T) {
	ctx := newTestContext(t)

	txCtx := WithDBTransaction(ctx)
	require.NoError(t, DB(txCtx).Create(&record{ID: "1", Name: "a"}).Error)
	require.Equal(t, int64(1), countRecords(t, txCtx))
	RollbackDBTransaction(txCtx)

	require.Equal(t, int64(0), countRecords(t, ctx))
}

func Test_DBTransaction_Nested(t *testing.T) {
	ctx := newTestContext(t)

	outer := WithDBTransaction(ctx)
	defer RollbackDBTransaction(outer)

	inner := WithDBTransaction(outer)
	require.NoError(t, DB(inner).Create(&record{ID: "1", Name: "a"}).Error)
	require.NoError(t, CommitDBTransaction(inner))

	// The inner commit must not end the outer transaction.
	require.NoError(t, DB(outer).Create(&record{ID: "2", Name: "b"}).Error)
	RollbackDBTransaction(outer)

	require.Equal(t, int64(0), countRecords(t, ctx))
}

func Test_Configs_Default(t *testing.T) {
	cfg := Configs(context.Background())
	require.Equal(t, "Asia/Riyadh", cfg.Scheduler.ReferenceTimezone)
}

func Test_DB_Panics(t *testing.T) {
	require.Panics(t, func() { DB(context.Background()) })
}
