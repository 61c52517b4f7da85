package reconcile

import (
	"context"
	"log"
	"sync"
	"time"

	"roomops/internal/feed"
	"roomops/internal/models"
)

// RoomSource is the slice of the room repository the mirror needs. Tests
// substitute an in-memory fake.
type RoomSource interface {
	ListByDate(date string) ([]models.Room, error)
}

// RoomList mirrors "rooms scheduled for today", newest first. The feed is
// the only writer between refreshes: handlers that create or update rooms
// publish an event and never touch the mirror directly, so there is a
// single update path into this state.
type RoomList struct {
	mu     sync.RWMutex
	source RoomSource
	clock  Clock
	rooms  []models.Room
}

func NewRoomList(source RoomSource, clock Clock) *RoomList {
	return &RoomList{source: source, clock: clock}
}

// Refresh does a full fetch for today's date and replaces the mirror. It
// self-heals whatever events were missed and handles day rollover.
func (l *RoomList) Refresh() error {
	rooms, err := l.source.ListByDate(Today(l.clock))
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.rooms = rooms
	l.mu.Unlock()
	return nil
}

// Apply folds one rooms-table event into the mirror.
func (l *RoomList) Apply(ev feed.Event) {
	switch ev.Kind {
	case feed.KindInsert:
		var room models.Room
		if !ev.DecodeNew(&room) {
			return
		}
		l.applyInsert(room)
	case feed.KindUpdate:
		var room models.Room
		if !ev.DecodeNew(&room) {
			return
		}
		l.applyUpdate(room)
	case feed.KindDelete:
		var room models.Room
		if !ev.DecodeOld(&room) {
			return
		}
		l.applyDelete(room.ID)
	}
}

// applyInsert prepends a room scheduled for today. Replays of the same
// insert are no-ops: a room already present keeps its position and state.
func (l *RoomList) applyInsert(room models.Room) {
	if room.SessionDate != Today(l.clock) {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.indexLocked(room.ID) >= 0 {
		return
	}
	l.rooms = append([]models.Room{room}, l.rooms...)
}

// applyUpdate keeps the mirror scoped to today on both sides of the event:
// a room rescheduled off today is dropped, a room rescheduled onto today is
// added, and an in-scope room is replaced in place.
func (l *RoomList) applyUpdate(room models.Room) {
	today := room.SessionDate == Today(l.clock)
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.indexLocked(room.ID)
	switch {
	case i >= 0 && today:
		l.rooms[i] = room
	case i >= 0 && !today:
		l.rooms = append(l.rooms[:i], l.rooms[i+1:]...)
	case i < 0 && today:
		l.rooms = append([]models.Room{room}, l.rooms...)
	}
}

func (l *RoomList) applyDelete(id uint) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.indexLocked(id); i >= 0 {
		l.rooms = append(l.rooms[:i], l.rooms[i+1:]...)
	}
}

func (l *RoomList) indexLocked(id uint) int {
	for i := range l.rooms {
		if l.rooms[i].ID == id {
			return i
		}
	}
	return -1
}

// Snapshot returns a copy of the mirror for rendering.
func (l *RoomList) Snapshot() []models.Room {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Room, len(l.rooms))
	copy(out, l.rooms)
	return out
}

// Run refreshes the mirror on a fixed interval until ctx is cancelled. The
// initial fetch happens before the first tick.
func (l *RoomList) Run(ctx context.Context, interval time.Duration) {
	if err := l.Refresh(); err != nil {
		log.Printf("[rooms] initial refresh: %v", err)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := l.Refresh(); err != nil {
				log.Printf("[rooms] refresh: %v", err)
			}
		}
	}
}
