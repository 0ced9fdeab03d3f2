package handler

import (
	"context"
	"time"

	"github.com/google/uuid"

	"cash-reconciliation-backend/internal/models"
	"cash-reconciliation-backend/internal/services/cashcheck"
	"cash-reconciliation-backend/internal/services/nightly"
)

type MockCashService struct {
	ComputeCashPositionFunc       func(ctx context.Context, userID uuid.UUID) (cashcheck.CashPosition, error)
	SuggestLikelyCashExpensesFunc func(ctx context.Context, userID uuid.UUID, targetDate time.Time) ([]cashcheck.Suggestion, error)
}

func (m *MockCashService) ComputeCashPosition(ctx context.Context, userID uuid.UUID) (cashcheck.CashPosition, error) {
	if m.ComputeCashPositionFunc != nil {
		return m.ComputeCashPositionFunc(ctx, userID)
	}
	return cashcheck.CashPosition{UserID: userID}, nil
}

func (m *MockCashService) SuggestLikelyCashExpenses(ctx context.Context, userID uuid.UUID, targetDate time.Time) ([]cashcheck.Suggestion, error) {
	if m.SuggestLikelyCashExpensesFunc != nil {
		return m.SuggestLikelyCashExpensesFunc(ctx, userID, targetDate)
	}
	return nil, nil
}

type MockTransactionCreator struct {
	CreateFunc func(ctx context.Context, tx *models.Transaction) error
	created    []*models.Transaction
}

func (m *MockTransactionCreator) Create(ctx context.Context, tx *models.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx)
	}
	m.created = append(m.created, tx)
	return nil
}

type MockNotificationReader struct {
	ListForUserFunc func(ctx context.Context, userID uuid.UUID, unreadOnly bool, types []string, limit int) ([]models.Notification, error)
	MarkReadFunc    func(ctx context.Context, userID, notificationID uuid.UUID) error
}

func (m *MockNotificationReader) ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, types []string, limit int) ([]models.Notification, error) {
	if m.ListForUserFunc != nil {
		return m.ListForUserFunc(ctx, userID, unreadOnly, types, limit)
	}
	return nil, nil
}

func (m *MockNotificationReader) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, userID, notificationID)
	}
	return nil
}

type MockReconciliationRunner struct {
	RunFunc func(ctx context.Context) nightly.Result
}

func (m *MockReconciliationRunner) Run(ctx context.Context) nightly.Result {
	if m.RunFunc != nil {
		return m.RunFunc(ctx)
	}
	return nightly.Result{Success: true}
}
