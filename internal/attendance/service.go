package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"

	"github.com/helpify-project/roomscan/internal/database/models"
)

const (
	msgExecute       = "Database execute error: "
	msgRecordFailure = "Failed to record attendance: "
)

type Options struct {
	// AllowedRoles restricts the accepted roles. Empty accepts any role.
	AllowedRoles []string

	// LegacyLogoutScope flips every "login" row of the user on checkout,
	// regardless of room, instead of only the row that was found.
	LegacyLogoutScope bool

	Now func() time.Time
}

type Service struct {
	DB *bun.DB

	validator         *requestValidator
	legacyLogoutScope bool
	now               func() time.Time
}

func NewService(db *bun.DB, opts Options) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Service{
		DB:                db,
		validator:         newRequestValidator(opts.AllowedRoles),
		legacyLogoutScope: opts.LegacyLogoutScope,
		now:               now,
	}
}

// Scan records one scan of req.UserCode in req.RoomCode. The first scan, or a
// scan after a checkout, records "login"; a scan while a "login" row is active
// closes that row and records "logout".
func (s *Service) Scan(ctx context.Context, req ScanRequest) (result ScanResult, err error) {
	if err = s.validator.check(req); err != nil {
		return
	}

	now := s.now()

	err = s.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) (err error) {
		var room models.Room
		if room, err = s.findRoom(ctx, tx, req.RoomCode); err != nil {
			return
		}

		var status Status
		if status, err = s.closeActiveSession(ctx, tx, req, now); err != nil {
			return
		}

		record := models.Attendance{
			UserCode:  req.UserCode,
			RoomCode:  req.RoomCode,
			Role:      req.Role,
			Status:    status.String(),
			TimeScan:  now,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if _, err = tx.NewInsert().Model(&record).Exec(ctx); err != nil {
			return storeError(msgRecordFailure, err)
		}

		result = ScanResult{
			RecordID: record.ID,
			RoomName: room.RoomName,
			Status:   status,
		}
		return
	})

	// Begin and commit failures come back unwrapped.
	var scanErr *Error
	if err != nil && !errors.As(err, &scanErr) {
		err = storeError(msgExecute, err)
	}
	if err != nil {
		result = ScanResult{}
	}
	return
}

func (s *Service) findRoom(ctx context.Context, tx bun.Tx, roomCode string) (room models.Room, err error) {
	q := tx.NewSelect().
		Model(&room).
		Where("room_code = ?", roomCode).
		Limit(1)

	// Serialises scans against the same room so two first scans cannot both
	// observe "no active session".
	if tx.Dialect().Name() == dialect.PG {
		q = q.For("UPDATE")
	}

	err = q.Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		err = &Error{Kind: KindNotFound, Message: msgRoomNotFound, Err: err}
	} else if err != nil {
		err = storeError(msgExecute, err)
	}
	return
}

// closeActiveSession returns the status this scan records, flipping the
// active "login" row to "logout" when there is one.
func (s *Service) closeActiveSession(ctx context.Context, tx bun.Tx, req ScanRequest, now time.Time) (status Status, err error) {
	var active models.Attendance
	err = tx.NewSelect().
		Model(&active).
		Where("? = ?", bun.Ident("userCode"), req.UserCode).
		Where("? = ?", bun.Ident("roomCode"), req.RoomCode).
		Where("status = ?", Login.String()).
		Order("id DESC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return Login, nil
	} else if err != nil {
		err = storeError(msgExecute, err)
		return
	}

	var current Status
	if current, err = ParseStatus(active.Status); err != nil {
		err = storeError(msgExecute, err)
		return
	}

	q := tx.NewUpdate().
		Model((*models.Attendance)(nil)).
		Set("status = ?", Logout.String()).
		Set("updated_at = ?", now)

	if s.legacyLogoutScope {
		q = q.Where("? = ?", bun.Ident("userCode"), req.UserCode).
			Where("status = ?", Login.String())
	} else {
		q = q.Where("id = ?", active.ID)
	}

	if _, err = q.Exec(ctx); err != nil {
		err = storeError(msgExecute, err)
		return
	}

	return current.Toggle(), nil
}
