package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"qr-dine-be/internal/bootstrap"
	"qr-dine-be/internal/config"
	"qr-dine-be/internal/server"
	"qr-dine-be/internal/tracer"
	"qr-dine-be/pkg/database"
)

// How often the expired-token sweep runs and how many rows it handles per pass.
const (
	expirySweepInterval = 1 * time.Hour
	expirySweepBatch    = 500
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go func() {
		log.Println("Background: Starting expired-token sweep...")
		ticker := time.NewTicker(expirySweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				if n, err := container.TokenService.CleanupExpired(sweepCtx, expirySweepBatch); err != nil {
					log.Printf("Background Sweep Error: %v", err)
				} else if n > 0 {
					log.Printf("Background Sweep: reversed %d expired token rows", n)
				}
			}
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server with graceful shutdown
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Println("Shutting down server...")
		stopSweep()
		if err := srv.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	if err := srv.Run(); err != nil {
		log.Fatal(err)
	}
}
