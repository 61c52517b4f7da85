package handler

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"roomops/internal/domain"
)

var promoCodePattern = regexp.MustCompile(`^[A-Z0-9_]+$`)

// ValidatePromoCode checks the operator-entered fields before anything is
// written: code format, a sane discount, a positive usage cap, and an
// expiry that is not already in the past.
func ValidatePromoCode(code string, discountPercent, maxUses int, expiresAt *time.Time, now time.Time) error {
	if !promoCodePattern.MatchString(code) {
		return errors.New("code must be uppercase letters, digits, or underscores")
	}
	if discountPercent <= 0 || discountPercent > 100 {
		return errors.New("discount must be between 1 and 100")
	}
	if maxUses <= 0 {
		return errors.New("max uses must be positive")
	}
	if expiresAt != nil && expiresAt.Before(now) {
		return errors.New("expiry date is in the past")
	}
	return nil
}

// ValidateRoomSchedule checks the date and time-of-day columns parse and
// the window is not inverted.
func ValidateRoomSchedule(date, start, end string) error {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return fmt.Errorf("session_date must be %s", domain.DateLayout)
	}
	startT, err := time.Parse(domain.TimeLayout, start)
	if err != nil {
		return fmt.Errorf("start_time must be %s", domain.TimeLayout)
	}
	endT, err := time.Parse(domain.TimeLayout, end)
	if err != nil {
		return fmt.Errorf("end_time must be %s", domain.TimeLayout)
	}
	if endT.Before(startT) {
		return errors.New("end_time is before start_time")
	}
	return nil
}

// ValidateRejectNote enforces the mandatory rejection reason before any
// store call is issued.
func ValidateRejectNote(note string) error {
	if strings.TrimSpace(note) == "" {
		return errors.New("rejection note is required")
	}
	return nil
}

// ValidateStatusMessage caps the banner length.
func ValidateStatusMessage(message string, limit int) error {
	if len(message) > limit {
		return fmt.Errorf("message exceeds %d characters", limit)
	}
	return nil
}
