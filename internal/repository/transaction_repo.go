package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cash-reconciliation-backend/internal/models"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// ListByUserInRange returns the user's transactions with a date inside
// [from, to], newest first.
func (r *TransactionRepository) ListByUserInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("transaction_date >= ? AND transaction_date <= ?", from, to).
		Order("transaction_date DESC").
		Find(&txns).Error
	return txns, err
}

// ListDebitsByUserInRange is ListByUserInRange restricted to debits.
func (r *TransactionRepository) ListDebitsByUserInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("transaction_type = ?", models.TypeDebit).
		Where("transaction_date >= ? AND transaction_date <= ?", from, to).
		Order("transaction_date DESC").
		Find(&txns).Error
	return txns, err
}

func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}
