package reconcile

import (
	"strconv"
	"strings"

	"roomops/internal/domain"
	"roomops/internal/models"
)

// ClassifyRoom labels a room active, full, or inactive from current
// wall-clock time. A room is active when it is scheduled for today and the
// current time falls inside its [start, end] window, inclusive on both
// ends, with spare capacity. Full requires the same date/time gate to have
// passed: a room outside its window is inactive even when over capacity.
//
// Pure and recomputed per call; labels are never cached, so they go stale
// only until the caller's next render or refresh tick.
func ClassifyRoom(r *models.Room, clock Clock) string {
	if r.SessionDate != Today(clock) {
		return domain.RoomStatusInactive
	}
	now := MinuteOfDay(clock)
	start, okStart := parseMinute(r.StartTime)
	end, okEnd := parseMinute(r.EndTime)
	if !okStart || !okEnd || now < start || now > end {
		return domain.RoomStatusInactive
	}
	if r.CurrentUsers >= r.MaxUsers {
		return domain.RoomStatusFull
	}
	return domain.RoomStatusActive
}

// parseMinute converts "HH:MM" to minutes since midnight.
func parseMinute(s string) (int, bool) {
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return 0, false
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	min, err := strconv.Atoi(m)
	if err != nil || min < 0 || min > 59 {
		return 0, false
	}
	return hour*60 + min, true
}
