package handler

import (
	"net/http"

	"roomops/config"
	"roomops/internal/domain"
	"roomops/internal/feed"
	"roomops/internal/repository"

	"github.com/gin-gonic/gin"
)

type StatusHandler struct {
	cfg        *config.Config
	statusRepo *repository.StatusRepository
	pub        *feed.Publisher
}

func NewStatusHandler(cfg *config.Config, statusRepo *repository.StatusRepository, pub *feed.Publisher) *StatusHandler {
	return &StatusHandler{cfg: cfg, statusRepo: statusRepo, pub: pub}
}

// Get handles GET /status-message. An unset banner comes back as an empty
// message rather than a 404.
func (h *StatusHandler) Get(c *gin.Context) {
	s, err := h.statusRepo.Get()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load status message"})
		return
	}
	if s == nil {
		c.JSON(http.StatusOK, gin.H{"message": ""})
		return
	}
	c.JSON(http.StatusOK, s)
}

// Set handles PUT /status-message. An empty message clears the banner.
func (h *StatusHandler) Set(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := ValidateStatusMessage(req.Message, h.cfg.Rooms.StatusMessageLimit); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	old, err := h.statusRepo.Get()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load status message"})
		return
	}
	s, err := h.statusRepo.Set(req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save status message"})
		return
	}
	if old == nil {
		h.pub.Publish(c.Request.Context(), feed.NewInsert(domain.TableStatusMessages, s))
	} else {
		h.pub.Publish(c.Request.Context(), feed.NewUpdate(domain.TableStatusMessages, old, s))
	}
	c.JSON(http.StatusOK, s)
}
