package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomops/internal/domain"
	"roomops/internal/feed"
	"roomops/internal/models"
)

type fakeRoomSource struct {
	rooms []models.Room
	err   error
	calls int
}

func (s *fakeRoomSource) ListByDate(date string) ([]models.Room, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	var out []models.Room
	for _, r := range s.rooms {
		if r.SessionDate == date {
			out = append(out, r)
		}
	}
	return out, nil
}

func todayRoom(id uint) models.Room {
	return models.Room{ID: id, Name: "room", SessionDate: "2026-03-10", StartTime: "09:00", EndTime: "17:00", MaxUsers: 4}
}

func roomIDs(rooms []models.Room) []uint {
	ids := make([]uint, len(rooms))
	for i, r := range rooms {
		ids[i] = r.ID
	}
	return ids
}

func newTestList(t *testing.T, seed ...models.Room) (*RoomList, *fakeRoomSource) {
	t.Helper()
	src := &fakeRoomSource{rooms: seed}
	l := NewRoomList(src, clockAt(t, "2026-03-10 12:00"))
	require.NoError(t, l.Refresh())
	return l, src
}

func TestRoomListInsertIdempotent(t *testing.T) {
	l, _ := newTestList(t)
	ev := feed.NewInsert(domain.TableRooms, todayRoom(7))
	l.Apply(ev)
	l.Apply(ev)
	assert.Equal(t, []uint{7}, roomIDs(l.Snapshot()))
}

func TestRoomListInsertPrepends(t *testing.T) {
	l, _ := newTestList(t, todayRoom(1))
	l.Apply(feed.NewInsert(domain.TableRooms, todayRoom(2)))
	assert.Equal(t, []uint{2, 1}, roomIDs(l.Snapshot()))
}

func TestRoomListInsertIgnoresOtherDates(t *testing.T) {
	l, _ := newTestList(t)
	r := todayRoom(3)
	r.SessionDate = "2026-03-11"
	l.Apply(feed.NewInsert(domain.TableRooms, r))
	assert.Empty(t, l.Snapshot())
}

func TestRoomListUpdateReplacesInPlace(t *testing.T) {
	l, _ := newTestList(t, todayRoom(1), todayRoom(2))
	updated := todayRoom(2)
	updated.Name = "renamed"
	l.Apply(feed.NewUpdate(domain.TableRooms, todayRoom(2), updated))
	snap := l.Snapshot()
	require.Equal(t, []uint{1, 2}, roomIDs(snap))
	assert.Equal(t, "renamed", snap[1].Name)
}

func TestRoomListUpdateRemovesRescheduledRoom(t *testing.T) {
	l, _ := newTestList(t, todayRoom(1))
	moved := todayRoom(1)
	moved.SessionDate = "2026-03-12"
	l.Apply(feed.NewUpdate(domain.TableRooms, todayRoom(1), moved))
	assert.Empty(t, l.Snapshot())
}

func TestRoomListUpdateAddsRoomMovedOntoToday(t *testing.T) {
	l, _ := newTestList(t, todayRoom(1))
	old := todayRoom(9)
	old.SessionDate = "2026-03-09"
	moved := todayRoom(9)
	l.Apply(feed.NewUpdate(domain.TableRooms, old, moved))
	assert.Equal(t, []uint{9, 1}, roomIDs(l.Snapshot()))
}

func TestRoomListUpdateIgnoresOutOfScope(t *testing.T) {
	l, _ := newTestList(t)
	r := todayRoom(5)
	r.SessionDate = "2026-03-12"
	l.Apply(feed.NewUpdate(domain.TableRooms, r, r))
	assert.Empty(t, l.Snapshot())
}

func TestRoomListDelete(t *testing.T) {
	l, _ := newTestList(t, todayRoom(1), todayRoom(2))
	l.Apply(feed.NewDelete(domain.TableRooms, todayRoom(1)))
	assert.Equal(t, []uint{2}, roomIDs(l.Snapshot()))

	// deleting an absent room is a no-op
	l.Apply(feed.NewDelete(domain.TableRooms, todayRoom(42)))
	assert.Equal(t, []uint{2}, roomIDs(l.Snapshot()))
}

func TestRoomListRefreshReplacesState(t *testing.T) {
	l, src := newTestList(t, todayRoom(1))
	l.Apply(feed.NewInsert(domain.TableRooms, todayRoom(2)))
	require.Equal(t, []uint{2, 1}, roomIDs(l.Snapshot()))

	// the store moved on; a refresh wins over folded state
	src.rooms = []models.Room{todayRoom(3)}
	require.NoError(t, l.Refresh())
	assert.Equal(t, []uint{3}, roomIDs(l.Snapshot()))
}

func TestRoomListRefreshErrorKeepsState(t *testing.T) {
	l, src := newTestList(t, todayRoom(1))
	src.err = assert.AnError
	require.Error(t, l.Refresh())
	assert.Equal(t, []uint{1}, roomIDs(l.Snapshot()))
}
