// Package dbtest provides throwaway SQLite databases shaped like the
// production schema, for use in tests.
package dbtest

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/helpify-project/roomscan/internal/database/models"
)

var schema = []string{
	`CREATE TABLE rooms (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		room_code TEXT NOT NULL UNIQUE,
		room_name TEXT NOT NULL
	)`,
	`CREATE TABLE attendance (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		"userCode" TEXT NOT NULL,
		"roomCode" TEXT NOT NULL,
		role TEXT NOT NULL,
		status TEXT NOT NULL CHECK (status IN ('login', 'logout')),
		time_scan TIMESTAMP NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
}

// Open returns an empty in-memory database private to t.
func Open(t testing.TB) *bun.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	sqldb, err := sql.Open(sqliteshim.ShimName, fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	for _, stmt := range schema {
		if _, err := db.ExecContext(context.Background(), stmt); err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}

	return db
}

func SeedRoom(t testing.TB, db *bun.DB, roomCode, roomName string) {
	t.Helper()

	room := models.Room{RoomCode: roomCode, RoomName: roomName}
	if _, err := db.NewInsert().Model(&room).Exec(context.Background()); err != nil {
		t.Fatalf("seed room %s: %v", roomCode, err)
	}
}

// Records returns every attendance row in insertion order.
func Records(t testing.TB, db *bun.DB) []models.Attendance {
	t.Helper()

	var records []models.Attendance
	if err := db.NewSelect().Model(&records).Order("id ASC").Scan(context.Background()); err != nil {
		t.Fatalf("list attendance: %v", err)
	}
	return records
}
