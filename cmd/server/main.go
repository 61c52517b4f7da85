package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roomops/config"
	"roomops/internal/database"
	"roomops/internal/domain"
	"roomops/internal/feed"
	"roomops/internal/queue"
	"roomops/internal/reconcile"
	"roomops/internal/repository"
	"roomops/internal/router"
	"roomops/internal/ws"
)

func main() {
	cfg := config.Load()
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	clock, err := reconcile.NewLocationClock(cfg.Rooms.Timezone)
	if err != nil {
		log.Fatalf("timezone %q: %v", cfg.Rooms.Timezone, err)
	}

	rdb := database.NewRedisClient(&cfg.Redis)
	pub := feed.NewPublisher(rdb)
	hub := ws.NewHub()

	roomRepo := repository.NewRoomRepository(db)
	rooms := reconcile.NewRoomList(roomRepo, clock)
	occupancy := reconcile.NewOccupancyUpdater(roomRepo, pub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := feed.NewSubscriber(rdb)
	sub.Handle(domain.TableRooms, rooms.Apply)
	sub.Handle(domain.TableRoomMembers, occupancy.Apply)
	sub.HandleAll(func(ev feed.Event) { hub.BroadcastAll(ev) })
	go sub.Run(ctx)
	go rooms.Run(ctx, cfg.Rooms.RefreshInterval)
	go queue.StartPayoutConsumer(cfg.Broker.URL)

	engine := router.Setup(cfg, db, clock, rooms, hub, pub)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Printf("server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server shutdown:", err)
	}
	fmt.Println("server stopped")
}
