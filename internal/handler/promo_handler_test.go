package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomops/internal/feed"
	"roomops/internal/models"
	"roomops/internal/repository"
)

type fakePromoStore struct {
	code       models.PromoCode
	increments int
}

func (s *fakePromoStore) List() ([]models.PromoCode, error)       { return []models.PromoCode{s.code}, nil }
func (s *fakePromoStore) Create(p *models.PromoCode) error        { return nil }
func (s *fakePromoStore) Update(p *models.PromoCode) error        { return nil }
func (s *fakePromoStore) Delete(id uint) error                    { return nil }
func (s *fakePromoStore) GetByID(id uint) (*models.PromoCode, error) {
	c := s.code
	return &c, nil
}

func (s *fakePromoStore) GetByCode(code string) (*models.PromoCode, error) {
	c := s.code
	return &c, nil
}

// IncrementUses applies the same guarded update as the SQL: the bump only
// lands while total_uses < max_uses.
func (s *fakePromoStore) IncrementUses(id uint) error {
	if s.code.TotalUses >= s.code.MaxUses {
		return repository.ErrCodeExhausted
	}
	s.code.TotalUses++
	s.increments++
	return nil
}

type frozenClock struct{ t time.Time }

func (c frozenClock) Now() time.Time { return c.t }

func redeemRequest(t *testing.T, h *PromoHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/promo-codes/redeem", h.Redeem)
	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodPost, "/promo-codes/redeem", bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func newPromoTestHandler(store promoStore) *PromoHandler {
	clock := frozenClock{t: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	return NewPromoHandler(store, clock, feed.NewPublisher(nil))
}

func TestRedeemLastUse(t *testing.T) {
	store := &fakePromoStore{code: models.PromoCode{ID: 1, Code: "SAVE20", DiscountPercent: 20, MaxUses: 50, TotalUses: 49}}
	h := newPromoTestHandler(store)

	w := redeemRequest(t, h, `{"code":"SAVE20"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 50, store.code.TotalUses)

	// the code is now exhausted; a second redeem is refused
	w = redeemRequest(t, h, `{"code":"SAVE20"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 50, store.code.TotalUses)
}

func TestRedeemLosesRaceForLastUse(t *testing.T) {
	// the activity check saw one use left, but a concurrent redeem took it
	// before the guarded increment ran
	store := &fakePromoStore{code: models.PromoCode{ID: 1, Code: "SAVE20", DiscountPercent: 20, MaxUses: 50, TotalUses: 50}}
	fresh := store.code
	fresh.TotalUses = 49
	stale := &staleReadStore{fakePromoStore: store, snapshot: fresh}

	w := redeemRequest(t, newPromoTestHandler(stale), `{"code":"SAVE20"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 50, store.code.TotalUses, "usage must not pass the cap")
	assert.Zero(t, store.increments)
}

// staleReadStore serves reads from a point-in-time snapshot while writes
// hit the live store, modelling a check-then-act interleaving.
type staleReadStore struct {
	*fakePromoStore
	snapshot models.PromoCode
}

func (s *staleReadStore) GetByCode(code string) (*models.PromoCode, error) {
	c := s.snapshot
	return &c, nil
}
