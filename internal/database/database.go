package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/extra/bundebug"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zapio"
)

// Open connects to PostgreSQL and verifies the connection. With debug set,
// every query is logged through zap.
func Open(ctx context.Context, postgresURI string, debug bool) (db *bun.DB, err error) {
	var dbConfig *pgx.ConnConfig
	if dbConfig, err = pgx.ParseConfig(postgresURI); err != nil {
		err = fmt.Errorf("unable to parse postgres uri: %w", err)
		return
	}

	sqldb := stdlib.OpenDB(*dbConfig)
	db = bun.NewDB(sqldb, pgdialect.New())

	if debug {
		dbLogger := &zapio.Writer{Log: zap.L().With(zap.String("section", "bun")), Level: zapcore.DebugLevel}
		db.AddQueryHook(bundebug.NewQueryHook(
			bundebug.WithVerbose(true),
			bundebug.WithWriter(dbLogger),
		))
	}

	if _, err = db.ExecContext(ctx, "SELECT 1"); err != nil {
		_ = db.Close()
		db = nil
		err = fmt.Errorf("failed to test database connection: %w", err)
		return
	}

	return
}
