// Package testdb starts a throwaway postgres for repository tests.
package testdb

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/alumni-portal/backend/database"
)

var (
	once    sync.Once
	initErr error
	dsn     string
)

func start() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("alumni_portal"),
		postgres.WithUsername("alumni"),
		postgres.WithPassword("alumni"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	if err != nil {
		initErr = err
		return
	}
	dsn, initErr = container.ConnectionString(ctx, "sslmode=disable")
}

// New returns a migrated database with every table emptied. Tests are skipped
// under -short or when no container runtime is available.
func New(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres-backed test in -short mode")
	}

	once.Do(func() {
		defer func() {
			// testcontainers panics when no docker host can be found
			if r := recover(); r != nil {
				initErr = fmt.Errorf("no container runtime: %v", r)
			}
		}()
		start()
	})
	if initErr != nil {
		t.Skipf("postgres container unavailable: %v", initErr)
	}

	db, err := database.Open(context.Background(), dsn, database.Pool{MaxOpenConns: 4})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	truncate(t, db)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func truncate(t *testing.T, db *gorm.DB) {
	t.Helper()
	var tables []string
	for _, m := range database.Models() {
		stmt := &gorm.Statement{DB: db}
		require.NoError(t, stmt.Parse(m))
		tables = append(tables, stmt.Schema.Table)
	}
	sql := "TRUNCATE TABLE "
	for i, name := range tables {
		if i > 0 {
			sql += ", "
		}
		sql += `"` + name + `"`
	}
	require.NoError(t, db.Exec(sql+" RESTART IDENTITY CASCADE").Error)
}
