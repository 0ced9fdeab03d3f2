package handler

import (
	"context"
	"time"

	"github.com/google/uuid"

	"cash-reconciliation-backend/internal/models"
	"cash-reconciliation-backend/internal/services/cashcheck"
	"cash-reconciliation-backend/internal/services/nightly"
)

// CashService computes positions and suggestions.
type CashService interface {
	ComputeCashPosition(ctx context.Context, userID uuid.UUID) (cashcheck.CashPosition, error)
	SuggestLikelyCashExpenses(ctx context.Context, userID uuid.UUID, targetDate time.Time) ([]cashcheck.Suggestion, error)
}

// TransactionCreator persists quick-add transactions.
type TransactionCreator interface {
	Create(ctx context.Context, tx *models.Transaction) error
}

// NotificationReader serves the notification read model.
type NotificationReader interface {
	ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, types []string, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
}

// ReconciliationRunner triggers a reconciliation pass on demand.
type ReconciliationRunner interface {
	Run(ctx context.Context) nightly.Result
}
