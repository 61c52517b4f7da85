package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"roomops/internal/models"
)

func TestValidatePromoCode(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	assert.NoError(t, ValidatePromoCode("SAVE20", 20, 50, nil, now))
	assert.NoError(t, ValidatePromoCode("SPRING_2026", 100, 1, &future, now))

	assert.Error(t, ValidatePromoCode("save20", 20, 50, nil, now), "lowercase")
	assert.Error(t, ValidatePromoCode("SAVE-20", 20, 50, nil, now), "hyphen")
	assert.Error(t, ValidatePromoCode("", 20, 50, nil, now), "empty")
	assert.Error(t, ValidatePromoCode("SAVE20", 0, 50, nil, now), "zero discount")
	assert.Error(t, ValidatePromoCode("SAVE20", 101, 50, nil, now), "discount over 100")
	assert.Error(t, ValidatePromoCode("SAVE20", 20, 0, nil, now), "zero cap")
	assert.Error(t, ValidatePromoCode("SAVE20", 20, 50, &past, now), "past expiry")
}

func TestPromoCodeActivity(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	exhausted := &models.PromoCode{Code: "SAVE20", MaxUses: 50, TotalUses: 50}
	assert.False(t, exhausted.IsActive(now))

	oneLeft := &models.PromoCode{Code: "SAVE20", MaxUses: 50, TotalUses: 49}
	assert.True(t, oneLeft.IsActive(now))

	expired := *oneLeft
	past := now.Add(-time.Hour)
	expired.ExpiresAt = &past
	assert.False(t, expired.IsActive(now))
}

func TestValidateRoomSchedule(t *testing.T) {
	assert.NoError(t, ValidateRoomSchedule("2026-03-10", "09:00", "17:00"))
	assert.Error(t, ValidateRoomSchedule("10/03/2026", "09:00", "17:00"), "bad date")
	assert.Error(t, ValidateRoomSchedule("2026-03-10", "9am", "17:00"), "bad start")
	assert.Error(t, ValidateRoomSchedule("2026-03-10", "17:00", "09:00"), "inverted window")
}

func TestValidateRejectNote(t *testing.T) {
	assert.Error(t, ValidateRejectNote(""))
	assert.Error(t, ValidateRejectNote("   "))
	assert.NoError(t, ValidateRejectNote("duplicate request"))
}

func TestAmountToCents(t *testing.T) {
	// amounts whose *100 product sits just below the integer in floating
	// point must still round to the full cent value
	assert.Equal(t, int64(1999), amountToCents(19.99))
	assert.Equal(t, int64(115), amountToCents(1.15))
	assert.Equal(t, int64(29), amountToCents(0.29))
	assert.Equal(t, int64(5000), amountToCents(50))
	assert.Equal(t, int64(0), amountToCents(0))
}

func TestValidateStatusMessage(t *testing.T) {
	assert.NoError(t, ValidateStatusMessage("maintenance at noon", 500))
	long := make([]byte, 501)
	for i := range long {
		long[i] = 'x'
	}
	assert.Error(t, ValidateStatusMessage(string(long), 500))
}
