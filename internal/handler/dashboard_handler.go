package handler

import (
	"net/http"

	"roomops/internal/domain"
	"roomops/internal/feed"
	"roomops/internal/reconcile"
	"roomops/internal/repository"
	"roomops/internal/ws"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	statsRepo   *repository.StatsRepository
	balanceRepo *repository.BalanceRepository
	clock       reconcile.Clock
	hub         *ws.Hub
	pub         *feed.Publisher
}

func NewDashboardHandler(
	statsRepo *repository.StatsRepository,
	balanceRepo *repository.BalanceRepository,
	clock reconcile.Clock,
	hub *ws.Hub,
	pub *feed.Publisher,
) *DashboardHandler {
	return &DashboardHandler{statsRepo: statsRepo, balanceRepo: balanceRepo, clock: clock, hub: hub, pub: pub}
}

// Stats handles GET /admin/dashboard.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.statsRepo.GetDashboardStats(reconcile.Today(h.clock))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"stats":             stats,
		"connected_clients": h.hub.ClientCount(),
	})
}

// Balances handles GET /admin/balances.
func (h *DashboardHandler) Balances(c *gin.Context) {
	list, err := h.balanceRepo.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list balances"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

// CreditBalance handles POST /admin/balances/credit — operator bookkeeping
// for earned commission, the inflow side of the payout ledger.
func (h *DashboardHandler) CreditBalance(c *gin.Context) {
	var req struct {
		InfluencerID uint  `json:"influencer_id" binding:"required"`
		AmountCents  int64 `json:"amount_cents" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	old, _ := h.balanceRepo.GetByInfluencerID(req.InfluencerID)
	if err := h.balanceRepo.Credit(req.InfluencerID, req.AmountCents); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to credit balance"})
		return
	}
	b, err := h.balanceRepo.GetByInfluencerID(req.InfluencerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reload balance"})
		return
	}
	if old == nil {
		h.pub.Publish(c.Request.Context(), feed.NewInsert(domain.TableBalances, b))
	} else {
		h.pub.Publish(c.Request.Context(), feed.NewUpdate(domain.TableBalances, old, b))
	}
	c.JSON(http.StatusOK, b)
}
