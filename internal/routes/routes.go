package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"cash-reconciliation-backend/internal/config"
	handler "cash-reconciliation-backend/internal/handlers"
	"cash-reconciliation-backend/internal/repository"
	"cash-reconciliation-backend/internal/services/cashcheck"
	"cash-reconciliation-backend/internal/services/nightly"
)

// RegisterRoutes wires repositories, services and handlers onto the router.
// The nightly job is returned so the caller can hand it to the scheduler.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, settings config.Settings, log zerolog.Logger) *nightly.Job {
	transactionRepo := repository.NewTransactionRepository(db)
	userRepo := repository.NewUserRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	cashService := cashcheck.NewService(transactionRepo, settings)
	job := nightly.NewJob(cashService, userRepo, notificationRepo, settings, log)

	cashHandler := handler.NewCashCheckHandler(cashService, transactionRepo, notificationRepo, job, log)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	cash := api.Group("/cash-check")
	cash.GET("/summary", cashHandler.Summary)
	cash.POST("/quick-add", cashHandler.QuickAdd)
	cash.POST("/still-have-cash", cashHandler.StillHaveCash)
	cash.GET("/notifications", cashHandler.Notifications)
	cash.POST("/notifications/:id/mark-read", cashHandler.MarkNotificationRead)
	cash.POST("/reconciliation/run", cashHandler.RunReconciliation)

	return job
}
