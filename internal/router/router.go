package router

import (
	"time"

	"roomops/config"
	"roomops/internal/feed"
	"roomops/internal/handler"
	"roomops/internal/middleware"
	"roomops/internal/reconcile"
	"roomops/internal/repository"
	"roomops/internal/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(
	cfg *config.Config,
	db *gorm.DB,
	clock reconcile.Clock,
	rooms *reconcile.RoomList,
	hub *ws.Hub,
	pub *feed.Publisher,
) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewRateLimiter(100, 60*time.Second)))

	roomRepo := repository.NewRoomRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	promoRepo := repository.NewPromoRepository(db)
	withdrawalRepo := repository.NewWithdrawalRepository(db)
	balanceRepo := repository.NewBalanceRepository(db)
	statusRepo := repository.NewStatusRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	roomHandler := handler.NewRoomHandler(roomRepo, memberRepo, rooms, clock, pub)
	promoHandler := handler.NewPromoHandler(promoRepo, clock, pub)
	withdrawalHandler := handler.NewWithdrawalHandler(cfg, withdrawalRepo, balanceRepo, clock, pub)
	statusHandler := handler.NewStatusHandler(cfg, statusRepo, pub)
	dashboardHandler := handler.NewDashboardHandler(statsRepo, balanceRepo, clock, hub, pub)

	api := r.Group("/api/v1")
	{
		api.GET("/health", handler.Health)

		api.GET("/rooms", roomHandler.List)
		api.POST("/rooms", roomHandler.Create)
		api.PUT("/rooms/:id", roomHandler.Update)
		api.DELETE("/rooms/:id", roomHandler.Delete)
		api.GET("/rooms/:id/members", roomHandler.ListMembers)
		api.POST("/rooms/:id/members", roomHandler.CreateMember)
		api.PATCH("/members/:id", roomHandler.UpdateMember)
		api.DELETE("/members/:id", roomHandler.DeleteMember)

		api.GET("/promo-codes", promoHandler.List)
		api.POST("/promo-codes", promoHandler.Create)
		api.POST("/promo-codes/redeem", promoHandler.Redeem)
		api.PUT("/promo-codes/:id", promoHandler.Update)
		api.DELETE("/promo-codes/:id", promoHandler.Delete)

		api.GET("/withdrawals", withdrawalHandler.List)
		api.POST("/withdrawals", withdrawalHandler.Create)
		api.POST("/withdrawals/:id/approve", withdrawalHandler.Approve)
		api.POST("/withdrawals/:id/reject", withdrawalHandler.Reject)
		api.POST("/withdrawals/:id/pay", withdrawalHandler.Pay)

		api.GET("/status-message", statusHandler.Get)
		api.PUT("/status-message", statusHandler.Set)

		api.GET("/admin/dashboard", dashboardHandler.Stats)
		api.GET("/admin/balances", dashboardHandler.Balances)
		api.POST("/admin/balances/credit", dashboardHandler.CreditBalance)

		api.GET("/ws/dashboard", ws.UpgradeDashboardWS(hub, rooms))
	}
	return r
}
