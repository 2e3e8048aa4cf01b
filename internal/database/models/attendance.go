package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Attendance is one scan. Rows are append-only apart from Status, which a
// later scan may flip from "login" to "logout".
type Attendance struct {
	bun.BaseModel `bun:"table:attendance"`

	ID        uint      `bun:",pk,autoincrement"`
	UserCode  string    `bun:"userCode,notnull"`
	RoomCode  string    `bun:"roomCode,notnull"`
	Role      string    `bun:"role,notnull"`
	Status    string    `bun:"status,notnull"`
	TimeScan  time.Time `bun:"time_scan,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}
