// Package migrations embeds the goose SQL migrations and applies them at
// service startup.
package migrations

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/glowlabs-io/scheduling/libs/db"
)

//go:embed *.sql
var files embed.FS

// Up applies all pending migrations using a temporary database/sql handle on
// top of the pgx pool. The pool itself stays open.
func Up(ctx context.Context, pool *db.Pool) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	goose.SetBaseFS(files)

	sqlDB := stdlib.OpenDBFromPool(pool.Pool)
	defer func() { _ = sqlDB.Close() }()

	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
