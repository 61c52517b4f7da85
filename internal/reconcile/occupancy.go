package reconcile

import (
	"context"
	"log"

	"roomops/internal/domain"
	"roomops/internal/feed"
	"roomops/internal/models"
)

// OccupancyStore applies a clamped occupancy delta to one room. Backed by
// RoomRepository.ApplyOccupancyDelta in production.
type OccupancyStore interface {
	ApplyOccupancyDelta(roomID uint, delta int) error
	GetByID(id uint) (*models.Room, error)
}

// OccupancyUpdater keeps room occupancy counters consistent with
// membership activity by folding room_members events into +1/-1 deltas.
// A member occupies its room while remaining_credits > 0; the deltas fire
// exactly on zero crossings.
type OccupancyUpdater struct {
	store OccupancyStore
	pub   *feed.Publisher
}

func NewOccupancyUpdater(store OccupancyStore, pub *feed.Publisher) *OccupancyUpdater {
	return &OccupancyUpdater{store: store, pub: pub}
}

// Apply folds one membership event. Store failures are logged and
// swallowed: the counter drifts until the next membership event or manual
// correction, which is acceptable because it is advisory.
func (u *OccupancyUpdater) Apply(ev feed.Event) {
	roomID, delta := deltaFor(ev)
	if delta == 0 {
		return
	}
	old, err := u.store.GetByID(roomID)
	if err != nil {
		log.Printf("[occupancy] load room %d: %v", roomID, err)
		return
	}
	if err := u.store.ApplyOccupancyDelta(roomID, delta); err != nil {
		log.Printf("[occupancy] apply %+d to room %d: %v", delta, roomID, err)
		return
	}
	// The counter write is itself a rooms-table change, so it goes back out
	// on the feed for the room mirror and dashboard clients.
	updated, err := u.store.GetByID(roomID)
	if err != nil {
		log.Printf("[occupancy] reload room %d: %v", roomID, err)
		return
	}
	u.pub.Publish(context.Background(), feed.NewUpdate(domain.TableRooms, old, updated))
}

// deltaFor derives the occupancy delta for a membership event. Returns a
// zero delta for events that do not cross the credits-active threshold and
// for cross-room moves, which are not supported.
func deltaFor(ev feed.Event) (roomID uint, delta int) {
	switch ev.Kind {
	case feed.KindInsert:
		var m models.RoomMember
		if !ev.DecodeNew(&m) {
			return 0, 0
		}
		if m.Active() {
			return m.RoomID, +1
		}
	case feed.KindUpdate:
		var oldM, newM models.RoomMember
		if !ev.DecodeOld(&oldM) || !ev.DecodeNew(&newM) {
			return 0, 0
		}
		if oldM.RoomID != newM.RoomID {
			return 0, 0
		}
		switch {
		case oldM.Active() && !newM.Active():
			return newM.RoomID, -1
		case !oldM.Active() && newM.Active():
			return newM.RoomID, +1
		}
	case feed.KindDelete:
		var m models.RoomMember
		if !ev.DecodeOld(&m) {
			return 0, 0
		}
		if m.Active() {
			return m.RoomID, -1
		}
	}
	return 0, 0
}
