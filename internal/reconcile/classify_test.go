package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"roomops/internal/domain"
	"roomops/internal/models"
)

type fakeClock struct {
	t time.Time
}

func (c fakeClock) Now() time.Time { return c.t }

func clockAt(t *testing.T, value string) fakeClock {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		t.Fatalf("bad clock value %q: %v", value, err)
	}
	return fakeClock{t: ts}
}

func TestClassifyRoom(t *testing.T) {
	room := func(current int) *models.Room {
		return &models.Room{
			ID:           1,
			SessionDate:  "2026-03-10",
			StartTime:    "09:00",
			EndTime:      "17:00",
			MaxUsers:     10,
			CurrentUsers: current,
		}
	}

	tests := []struct {
		name    string
		room    *models.Room
		now     string
		want    string
	}{
		{"within window with capacity", room(3), "2026-03-10 12:00", domain.RoomStatusActive},
		{"after window", room(3), "2026-03-10 20:00", domain.RoomStatusInactive},
		{"before window", room(3), "2026-03-10 08:59", domain.RoomStatusInactive},
		{"window start inclusive", room(3), "2026-03-10 09:00", domain.RoomStatusActive},
		{"window end inclusive", room(3), "2026-03-10 17:00", domain.RoomStatusActive},
		{"at capacity within window", room(10), "2026-03-10 12:00", domain.RoomStatusFull},
		{"over capacity within window", room(12), "2026-03-10 12:00", domain.RoomStatusFull},
		{"at capacity outside window stays inactive", room(10), "2026-03-10 20:00", domain.RoomStatusInactive},
		{"wrong date", room(3), "2026-03-11 12:00", domain.RoomStatusInactive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyRoom(tt.room, clockAt(t, tt.now)))
		})
	}
}

func TestClassifyRoomBadTimeFormat(t *testing.T) {
	r := &models.Room{SessionDate: "2026-03-10", StartTime: "nine", EndTime: "17:00", MaxUsers: 5}
	assert.Equal(t, domain.RoomStatusInactive, ClassifyRoom(r, clockAt(t, "2026-03-10 12:00")))
}

func TestMinuteOfDay(t *testing.T) {
	assert.Equal(t, 12*60+34, MinuteOfDay(clockAt(t, "2026-03-10 12:34")))
}
