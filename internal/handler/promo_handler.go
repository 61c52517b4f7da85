package handler

import (
	"errors"
	"net/http"
	"time"

	"roomops/internal/domain"
	"roomops/internal/feed"
	"roomops/internal/models"
	"roomops/internal/reconcile"
	"roomops/internal/repository"

	"github.com/gin-gonic/gin"
)

// promoStore is the repository slice the handler needs; tests substitute
// an in-memory fake.
type promoStore interface {
	List() ([]models.PromoCode, error)
	Create(p *models.PromoCode) error
	GetByID(id uint) (*models.PromoCode, error)
	GetByCode(code string) (*models.PromoCode, error)
	Update(p *models.PromoCode) error
	Delete(id uint) error
	IncrementUses(id uint) error
}

type PromoHandler struct {
	promoRepo promoStore
	clock     reconcile.Clock
	pub       *feed.Publisher
}

func NewPromoHandler(promoRepo promoStore, clock reconcile.Clock, pub *feed.Publisher) *PromoHandler {
	return &PromoHandler{promoRepo: promoRepo, clock: clock, pub: pub}
}

type promoView struct {
	models.PromoCode
	Active bool `json:"active"`
}

// List handles GET /promo-codes.
func (h *PromoHandler) List(c *gin.Context) {
	codes, err := h.promoRepo.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list promo codes"})
		return
	}
	now := h.clock.Now()
	views := make([]promoView, len(codes))
	for i := range codes {
		views[i] = promoView{PromoCode: codes[i], Active: codes[i].IsActive(now)}
	}
	c.JSON(http.StatusOK, gin.H{"data": views})
}

type promoRequest struct {
	Code            string     `json:"code" binding:"required"`
	InfluencerID    uint       `json:"influencer_id" binding:"required"`
	DiscountPercent int        `json:"discount_percent" binding:"required"`
	MaxUses         int        `json:"max_uses" binding:"required"`
	ExpiresAt       *time.Time `json:"expires_at"`
}

// Create handles POST /promo-codes.
func (h *PromoHandler) Create(c *gin.Context) {
	var req promoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := ValidatePromoCode(req.Code, req.DiscountPercent, req.MaxUses, req.ExpiresAt, h.clock.Now()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p := &models.PromoCode{
		Code:            req.Code,
		InfluencerID:    req.InfluencerID,
		DiscountPercent: req.DiscountPercent,
		MaxUses:         req.MaxUses,
		ExpiresAt:       req.ExpiresAt,
	}
	if err := h.promoRepo.Create(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create promo code"})
		return
	}
	h.pub.Publish(c.Request.Context(), feed.NewInsert(domain.TablePromoCodes, p))
	c.JSON(http.StatusCreated, p)
}

// Update handles PUT /promo-codes/:id.
func (h *PromoHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	old, err := h.promoRepo.GetByID(id)
	if err != nil {
		notFoundOr500(c, err, "promo code not found")
		return
	}
	var req promoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := ValidatePromoCode(req.Code, req.DiscountPercent, req.MaxUses, req.ExpiresAt, h.clock.Now()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p := *old
	p.Code = req.Code
	p.InfluencerID = req.InfluencerID
	p.DiscountPercent = req.DiscountPercent
	p.MaxUses = req.MaxUses
	p.ExpiresAt = req.ExpiresAt
	if err := h.promoRepo.Update(&p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update promo code"})
		return
	}
	h.pub.Publish(c.Request.Context(), feed.NewUpdate(domain.TablePromoCodes, old, &p))
	c.JSON(http.StatusOK, p)
}

// Redeem handles POST /promo-codes/redeem. Inactive codes (cap reached or
// expired) are refused before any counter is touched.
func (h *PromoHandler) Redeem(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	old, err := h.promoRepo.GetByCode(req.Code)
	if err != nil {
		notFoundOr500(c, err, "promo code not found")
		return
	}
	if !old.IsActive(h.clock.Now()) {
		c.JSON(http.StatusConflict, gin.H{"error": "promo code is no longer active"})
		return
	}
	if err := h.promoRepo.IncrementUses(old.ID); err != nil {
		if errors.Is(err, repository.ErrCodeExhausted) {
			c.JSON(http.StatusConflict, gin.H{"error": "promo code is no longer active"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to redeem promo code"})
		return
	}
	p, err := h.promoRepo.GetByID(old.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reload promo code"})
		return
	}
	h.pub.Publish(c.Request.Context(), feed.NewUpdate(domain.TablePromoCodes, old, p))
	c.JSON(http.StatusOK, gin.H{"code": p.Code, "discount_percent": p.DiscountPercent, "remaining_uses": p.MaxUses - p.TotalUses})
}

// Delete handles DELETE /promo-codes/:id.
func (h *PromoHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	old, err := h.promoRepo.GetByID(id)
	if err != nil {
		notFoundOr500(c, err, "promo code not found")
		return
	}
	if err := h.promoRepo.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete promo code"})
		return
	}
	h.pub.Publish(c.Request.Context(), feed.NewDelete(domain.TablePromoCodes, old))
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
