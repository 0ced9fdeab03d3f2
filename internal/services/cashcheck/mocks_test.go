package cashcheck

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"cash-reconciliation-backend/internal/config"
	"cash-reconciliation-backend/internal/models"
)

// MockTransactionStore is a function-field mock of TransactionStore.
type MockTransactionStore struct {
	ListByUserInRangeFunc       func(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.Transaction, error)
	ListDebitsByUserInRangeFunc func(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.Transaction, error)
}

func (m *MockTransactionStore) ListByUserInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.Transaction, error) {
	if m.ListByUserInRangeFunc != nil {
		return m.ListByUserInRangeFunc(ctx, userID, from, to)
	}
	return nil, nil
}

func (m *MockTransactionStore) ListDebitsByUserInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.Transaction, error) {
	if m.ListDebitsByUserInRangeFunc != nil {
		return m.ListDebitsByUserInRangeFunc(ctx, userID, from, to)
	}
	return nil, nil
}

func testSettings() config.Settings {
	return config.Settings{
		LookbackDays:           30,
		MinDaysSinceWithdrawal: 3,
		HistoryDays:            90,
		SuggestionLimit:        4,
		NudgeThreshold:         decimal.NewFromInt(1000),
		WeekdayBoost:           1.6,
		PerUserTimeout:         5 * time.Second,
	}
}

func debit(amount float64, date time.Time, opts ...func(*models.Transaction)) models.Transaction {
	tx := models.Transaction{
		ID:              uuid.New(),
		Amount:          decimal.NewFromFloat(amount),
		Type:            models.TypeDebit,
		TransactionDate: date,
	}
	for _, opt := range opts {
		opt(&tx)
	}
	return tx
}

func withTags(tags ...string) func(*models.Transaction) {
	return func(tx *models.Transaction) { tx.Tags = datatypes.NewJSONSlice(tags) }
}

func withSubcategory(s string) func(*models.Transaction) {
	return func(tx *models.Transaction) { tx.Subcategory = s }
}

func withMerchantCategory(s string) func(*models.Transaction) {
	return func(tx *models.Transaction) { tx.MerchantCategory = s }
}

func withDescription(s string) func(*models.Transaction) {
	return func(tx *models.Transaction) { tx.Description = s }
}
