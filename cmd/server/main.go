package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cash-reconciliation-backend/internal/config"
	"cash-reconciliation-backend/internal/logger"
	"cash-reconciliation-backend/internal/models"
	"cash-reconciliation-backend/internal/routes"
	"cash-reconciliation-backend/internal/scheduler"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		l := logger.New()
		l.Info().Msg("no .env file found, relying on system env")
	}

	log := logger.New()
	settings := config.Load()

	db, err := config.InitDB()
	if err != nil {
		log.Fatal().Err(err).Msg("database init failed")
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Transaction{},
		&models.Notification{},
	); err != nil {
		log.Fatal().Err(err).Msg("automigrate failed")
	}

	r := gin.Default()
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	job := routes.RegisterRoutes(r, db, settings, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Nightly trigger for the reconciliation job.
	sched := scheduler.New(settings.ScheduleHour, settings.ScheduleMinute, func(ctx context.Context) {
		job.Run(ctx)
	}, log)
	go sched.Run(ctx)

	srv := &http.Server{Addr: ":8080", Handler: r}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()
	log.Info().Str("addr", srv.Addr).Msg("server started")

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
