package models

import (
	"github.com/uptrace/bun"
)

type Room struct {
	bun.BaseModel `bun:"table:rooms"`

	ID       uint   `bun:",pk,autoincrement"`
	RoomCode string `bun:"room_code,unique,notnull"`
	RoomName string `bun:"room_name,notnull"`
}
