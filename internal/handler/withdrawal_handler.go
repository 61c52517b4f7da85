package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"roomops/config"
	"roomops/internal/domain"
	"roomops/internal/feed"
	"roomops/internal/models"
	"roomops/internal/queue"
	"roomops/internal/reconcile"
	"roomops/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WithdrawalHandler struct {
	cfg            *config.Config
	withdrawalRepo *repository.WithdrawalRepository
	balanceRepo    *repository.BalanceRepository
	clock          reconcile.Clock
	pub            *feed.Publisher
}

func NewWithdrawalHandler(
	cfg *config.Config,
	withdrawalRepo *repository.WithdrawalRepository,
	balanceRepo *repository.BalanceRepository,
	clock reconcile.Clock,
	pub *feed.Publisher,
) *WithdrawalHandler {
	return &WithdrawalHandler{
		cfg:            cfg,
		withdrawalRepo: withdrawalRepo,
		balanceRepo:    balanceRepo,
		clock:          clock,
		pub:            pub,
	}
}

// List handles GET /withdrawals?status=pending.
func (h *WithdrawalHandler) List(c *gin.Context) {
	status := c.Query("status")
	switch status {
	case "", domain.WithdrawalStatusPending, domain.WithdrawalStatusApproved,
		domain.WithdrawalStatusPaid, domain.WithdrawalStatusRejected:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}
	page, limit := parsePagination(c)
	list, err := h.withdrawalRepo.List(status, limit, (page-1)*limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list withdrawals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "page": page, "limit": limit})
}

// Create handles POST /withdrawals — an influencer requesting a payout.
func (h *WithdrawalHandler) Create(c *gin.Context) {
	var req struct {
		InfluencerID  uint    `json:"influencer_id" binding:"required"`
		Amount        float64 `json:"amount" binding:"required,gt=0"`
		PaymentMethod string  `json:"payment_method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amountCents := amountToCents(req.Amount)
	balance, err := h.balanceRepo.GetOrCreate(req.InfluencerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "balance error"})
		return
	}
	if balance.BalanceCents < amountCents {
		c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient balance"})
		return
	}
	w := &models.Withdrawal{
		ReferenceID:   fmt.Sprintf("wd-%s", uuid.New().String()),
		InfluencerID:  req.InfluencerID,
		Amount:        req.Amount,
		AmountCents:   amountCents,
		Status:        domain.WithdrawalStatusPending,
		PaymentMethod: req.PaymentMethod,
		RequestedAt:   h.clock.Now(),
	}
	if err := h.withdrawalRepo.Create(w); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record withdrawal"})
		return
	}
	h.pub.Publish(c.Request.Context(), feed.NewInsert(domain.TableWithdrawals, w))
	c.JSON(http.StatusCreated, w)
}

// Approve handles POST /withdrawals/:id/approve.
func (h *WithdrawalHandler) Approve(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	old, err := h.withdrawalRepo.GetByID(id)
	if err != nil {
		notFoundOr500(c, err, "withdrawal not found")
		return
	}
	w, err := h.withdrawalRepo.Approve(id)
	if err != nil {
		h.transitionError(c, err)
		return
	}
	h.pub.Publish(c.Request.Context(), feed.NewUpdate(domain.TableWithdrawals, old, w))
	c.JSON(http.StatusOK, w)
}

// Reject handles POST /withdrawals/:id/reject. The note is mandatory and
// checked before any store call.
func (h *WithdrawalHandler) Reject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Note string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := ValidateRejectNote(req.Note); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	old, err := h.withdrawalRepo.GetByID(id)
	if err != nil {
		notFoundOr500(c, err, "withdrawal not found")
		return
	}
	w, err := h.withdrawalRepo.Reject(id, req.Note)
	if err != nil {
		h.transitionError(c, err)
		return
	}
	h.pub.Publish(c.Request.Context(), feed.NewUpdate(domain.TableWithdrawals, old, w))
	c.JSON(http.StatusOK, w)
}

// Pay handles POST /withdrawals/:id/pay. Settlement is one repository
// transaction covering the status flip, the paid timestamp, and the
// balance debit; the handler does no multi-step orchestration.
func (h *WithdrawalHandler) Pay(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Note string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	old, err := h.withdrawalRepo.GetByID(id)
	if err != nil {
		notFoundOr500(c, err, "withdrawal not found")
		return
	}
	oldBalance, _ := h.balanceRepo.GetByInfluencerID(old.InfluencerID)

	w, err := h.withdrawalRepo.MarkPaid(id, req.Note, h.clock.Now())
	if err != nil {
		h.transitionError(c, err)
		return
	}
	h.pub.Publish(c.Request.Context(), feed.NewUpdate(domain.TableWithdrawals, old, w))
	if newBalance, err := h.balanceRepo.GetByInfluencerID(w.InfluencerID); err == nil {
		h.pub.Publish(c.Request.Context(), feed.NewUpdate(domain.TableBalances, oldBalance, newBalance))
	}

	ev := queue.PayoutSettledEvent{
		WithdrawalID:  w.ID,
		ReferenceID:   w.ReferenceID,
		InfluencerID:  w.InfluencerID,
		AmountCents:   w.AmountCents,
		PaymentMethod: w.PaymentMethod,
		Note:          req.Note,
		PaidAt:        w.PaidAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	if err := queue.PublishPayoutSettled(c.Request.Context(), h.cfg.Broker.URL, ev); err != nil {
		log.Printf("[withdrawal] settlement event for %d not published: %v", w.ID, err)
	}
	c.JSON(http.StatusOK, w)
}

func (h *WithdrawalHandler) transitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrInsufficientBalance):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store error"})
	}
}
