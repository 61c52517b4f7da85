package handler

import (
	"errors"
	"net/http"
	"strconv"

	"roomops/internal/domain"
	"roomops/internal/feed"
	"roomops/internal/models"
	"roomops/internal/reconcile"
	"roomops/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RoomHandler struct {
	roomRepo   *repository.RoomRepository
	memberRepo *repository.MemberRepository
	rooms      *reconcile.RoomList
	clock      reconcile.Clock
	pub        *feed.Publisher
}

func NewRoomHandler(
	roomRepo *repository.RoomRepository,
	memberRepo *repository.MemberRepository,
	rooms *reconcile.RoomList,
	clock reconcile.Clock,
	pub *feed.Publisher,
) *RoomHandler {
	return &RoomHandler{
		roomRepo:   roomRepo,
		memberRepo: memberRepo,
		rooms:      rooms,
		clock:      clock,
		pub:        pub,
	}
}

type roomView struct {
	models.Room
	Status string `json:"status"`
}

// List handles GET /rooms — today's mirror with live status labels.
func (h *RoomHandler) List(c *gin.Context) {
	snapshot := h.rooms.Snapshot()
	views := make([]roomView, len(snapshot))
	for i := range snapshot {
		views[i] = roomView{Room: snapshot[i], Status: reconcile.ClassifyRoom(&snapshot[i], h.clock)}
	}
	c.JSON(http.StatusOK, gin.H{"data": views})
}

type roomRequest struct {
	Name              string `json:"name" binding:"required"`
	Description       string `json:"description"`
	AccessURL         string `json:"access_url"`
	MaxUsers          int    `json:"max_users" binding:"required,min=1"`
	PricePerHourCents int64  `json:"price_per_hour_cents" binding:"min=0"`
	SessionDate       string `json:"session_date" binding:"required"`
	StartTime         string `json:"start_time" binding:"required"`
	EndTime           string `json:"end_time" binding:"required"`
}

// Create handles POST /rooms.
func (h *RoomHandler) Create(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := ValidateRoomSchedule(req.SessionDate, req.StartTime, req.EndTime); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	room := &models.Room{
		Name:              req.Name,
		Description:       req.Description,
		AccessURL:         req.AccessURL,
		MaxUsers:          req.MaxUsers,
		PricePerHourCents: req.PricePerHourCents,
		SessionDate:       req.SessionDate,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
	}
	if err := h.roomRepo.Create(room); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room"})
		return
	}
	h.pub.Publish(c.Request.Context(), feed.NewInsert(domain.TableRooms, room))
	c.JSON(http.StatusCreated, room)
}

// Update handles PUT /rooms/:id.
func (h *RoomHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	old, err := h.roomRepo.GetByID(id)
	if err != nil {
		notFoundOr500(c, err, "room not found")
		return
	}
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := ValidateRoomSchedule(req.SessionDate, req.StartTime, req.EndTime); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	room := *old
	room.Name = req.Name
	room.Description = req.Description
	room.AccessURL = req.AccessURL
	room.MaxUsers = req.MaxUsers
	room.PricePerHourCents = req.PricePerHourCents
	room.SessionDate = req.SessionDate
	room.StartTime = req.StartTime
	room.EndTime = req.EndTime
	if err := h.roomRepo.Update(&room); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update room"})
		return
	}
	h.pub.Publish(c.Request.Context(), feed.NewUpdate(domain.TableRooms, old, &room))
	c.JSON(http.StatusOK, room)
}

// Delete handles DELETE /rooms/:id. Members are removed first inside one
// transaction; a failed purge leaves the room row present.
func (h *RoomHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	old, err := h.roomRepo.GetByID(id)
	if err != nil {
		notFoundOr500(c, err, "room not found")
		return
	}
	if err := h.roomRepo.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete room"})
		return
	}
	h.pub.Publish(c.Request.Context(), feed.NewDelete(domain.TableRooms, old))
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// ListMembers handles GET /rooms/:id/members.
func (h *RoomHandler) ListMembers(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	members, err := h.memberRepo.ListByRoom(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list members"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": members})
}

// CreateMember handles POST /rooms/:id/members — a user joining a room.
func (h *RoomHandler) CreateMember(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if _, err := h.roomRepo.GetByID(id); err != nil {
		notFoundOr500(c, err, "room not found")
		return
	}
	var req struct {
		UserID           uint  `json:"user_id" binding:"required"`
		RemainingCredits int64 `json:"remaining_credits" binding:"min=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m := &models.RoomMember{RoomID: id, UserID: req.UserID, RemainingCredits: req.RemainingCredits}
	if err := h.memberRepo.Create(m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add member"})
		return
	}
	h.pub.Publish(c.Request.Context(), feed.NewInsert(domain.TableRoomMembers, m))
	c.JSON(http.StatusCreated, m)
}

// UpdateMember handles PATCH /members/:id — credit adjustments.
func (h *RoomHandler) UpdateMember(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	old, err := h.memberRepo.GetByID(id)
	if err != nil {
		notFoundOr500(c, err, "member not found")
		return
	}
	var req struct {
		RemainingCredits *int64 `json:"remaining_credits" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *req.RemainingCredits < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "remaining_credits cannot be negative"})
		return
	}
	m := *old
	m.RemainingCredits = *req.RemainingCredits
	if err := h.memberRepo.Update(&m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update member"})
		return
	}
	h.pub.Publish(c.Request.Context(), feed.NewUpdate(domain.TableRoomMembers, old, &m))
	c.JSON(http.StatusOK, m)
}

// DeleteMember handles DELETE /members/:id.
func (h *RoomHandler) DeleteMember(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	old, err := h.memberRepo.GetByID(id)
	if err != nil {
		notFoundOr500(c, err, "member not found")
		return
	}
	if err := h.memberRepo.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove member"})
		return
	}
	h.pub.Publish(c.Request.Context(), feed.NewDelete(domain.TableRoomMembers, old))
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func notFoundOr500(c *gin.Context, err error, msg string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "store error"})
}
