package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roomops/internal/domain"
	"roomops/internal/feed"
	"roomops/internal/models"
)

// fakeOccupancyStore mirrors the repository's GREATEST(current + delta, 0)
// clamp so the invariant under test matches production behavior.
type fakeOccupancyStore struct {
	occupancy map[uint]int
	deltas    []int
}

func newFakeOccupancyStore() *fakeOccupancyStore {
	return &fakeOccupancyStore{occupancy: make(map[uint]int)}
}

func (s *fakeOccupancyStore) ApplyOccupancyDelta(roomID uint, delta int) error {
	s.deltas = append(s.deltas, delta)
	next := s.occupancy[roomID] + delta
	if next < 0 {
		next = 0
	}
	s.occupancy[roomID] = next
	return nil
}

func (s *fakeOccupancyStore) GetByID(id uint) (*models.Room, error) {
	return &models.Room{ID: id, CurrentUsers: s.occupancy[id]}, nil
}

func member(roomID uint, credits int64) models.RoomMember {
	return models.RoomMember{ID: 1, RoomID: roomID, UserID: 9, RemainingCredits: credits}
}

func newTestUpdater() (*OccupancyUpdater, *fakeOccupancyStore) {
	store := newFakeOccupancyStore()
	return NewOccupancyUpdater(store, feed.NewPublisher(nil)), store
}

func TestOccupancyInsert(t *testing.T) {
	u, store := newTestUpdater()
	u.Apply(feed.NewInsert(domain.TableRoomMembers, member(1, 5)))
	assert.Equal(t, []int{1}, store.deltas)
	assert.Equal(t, 1, store.occupancy[1])

	// joining with no credits does not occupy
	u.Apply(feed.NewInsert(domain.TableRoomMembers, member(1, 0)))
	assert.Equal(t, []int{1}, store.deltas)
}

func TestOccupancyUpdateZeroCrossings(t *testing.T) {
	u, store := newTestUpdater()
	store.occupancy[1] = 1

	// 5 -> 0 is exactly one decrement
	u.Apply(feed.NewUpdate(domain.TableRoomMembers, member(1, 5), member(1, 0)))
	assert.Equal(t, []int{-1}, store.deltas)
	assert.Equal(t, 0, store.occupancy[1])

	// 0 -> 0 is no delta
	u.Apply(feed.NewUpdate(domain.TableRoomMembers, member(1, 0), member(1, 0)))
	assert.Equal(t, []int{-1}, store.deltas)

	// 0 -> 3 re-occupies
	u.Apply(feed.NewUpdate(domain.TableRoomMembers, member(1, 0), member(1, 3)))
	assert.Equal(t, []int{-1, 1}, store.deltas)

	// 3 -> 2 stays above the threshold, no delta
	u.Apply(feed.NewUpdate(domain.TableRoomMembers, member(1, 3), member(1, 2)))
	assert.Equal(t, []int{-1, 1}, store.deltas)
}

func TestOccupancyUpdateIgnoresCrossRoomMove(t *testing.T) {
	u, store := newTestUpdater()
	u.Apply(feed.NewUpdate(domain.TableRoomMembers, member(1, 5), member(2, 5)))
	assert.Empty(t, store.deltas)
}

func TestOccupancyDelete(t *testing.T) {
	u, store := newTestUpdater()
	store.occupancy[1] = 2
	u.Apply(feed.NewDelete(domain.TableRoomMembers, member(1, 5)))
	assert.Equal(t, 1, store.occupancy[1])

	// a drained member leaving was already counted out
	u.Apply(feed.NewDelete(domain.TableRoomMembers, member(1, 0)))
	assert.Equal(t, 1, store.occupancy[1])
}

func TestOccupancyNeverNegative(t *testing.T) {
	u, store := newTestUpdater()
	store.occupancy[1] = 1
	for i := 0; i < 4; i++ {
		u.Apply(feed.NewDelete(domain.TableRoomMembers, member(1, 5)))
	}
	assert.Equal(t, 0, store.occupancy[1])
}
