// Package reconcile folds change-feed events into in-memory mirrors of the
// store: the room list for the current date and the per-room occupancy
// counter. It also hosts the pure session-window classifier.
package reconcile

import (
	"time"

	"roomops/internal/domain"
)

// Clock is the single source of "now" for every date computation. All
// screens share one instance so a room can never be considered today in
// one view and not in another.
type Clock interface {
	Now() time.Time
}

// LocationClock reads wall-clock time in a fixed location.
type LocationClock struct {
	loc *time.Location
}

func NewLocationClock(timezone string) (*LocationClock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return &LocationClock{loc: loc}, nil
}

func (c *LocationClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Today formats the clock's current date the way rooms store it.
func Today(c Clock) string {
	return c.Now().Format(domain.DateLayout)
}

// MinuteOfDay returns minutes since midnight on the clock's current time.
func MinuteOfDay(c Clock) int {
	now := c.Now()
	return now.Hour()*60 + now.Minute()
}
