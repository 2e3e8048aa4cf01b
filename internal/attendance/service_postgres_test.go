package attendance

import (
	"context"
	"os"
	"sort"
	"sync"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"

	"github.com/helpify-project/roomscan/internal/database"
	"github.com/helpify-project/roomscan/internal/database/migrations"
	"github.com/helpify-project/roomscan/internal/database/models"
)

// Without the room lock two first scans both see no active session and both
// record "login". Row locking only exists on PostgreSQL, so this needs a real
// server.
func TestScanConcurrentFirstScansPostgres(t *testing.T) {
	uri := os.Getenv("ROOMSCAN_TEST_POSTGRES_URI")
	if uri == "" {
		t.Skip("ROOMSCAN_TEST_POSTGRES_URI not set")
	}

	ctx := context.Background()
	db, err := database.Open(ctx, uri, false)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err = migrations.Up(db.DB); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	roomCode := "race-" + uuid.New().String()
	userCode := "user-" + uuid.New().String()
	room := models.Room{RoomCode: roomCode, RoomName: "Race Lab"}
	if _, err = db.NewInsert().Model(&room).Exec(ctx); err != nil {
		t.Fatalf("seed room: %v", err)
	}

	s := NewService(db, Options{})

	const scans = 2
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		statuses []string
	)
	for i := 0; i < scans; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := s.Scan(ctx, ScanRequest{UserCode: userCode, RoomCode: roomCode, Role: "student"})
			if err != nil {
				t.Errorf("scan: %v", err)
				return
			}
			mu.Lock()
			statuses = append(statuses, result.Status.String())
			mu.Unlock()
		}()
	}
	wg.Wait()

	sort.Strings(statuses)
	if len(statuses) != scans || statuses[0] != "login" || statuses[1] != "logout" {
		t.Fatalf("expected one login and one logout, got %s", spew.Sdump(statuses))
	}
}
