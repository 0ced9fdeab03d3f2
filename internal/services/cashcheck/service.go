// Package cashcheck estimates untracked wallet cash from ATM withdrawals minus
// tracked cash expenses, and builds probabilistic quick-add suggestions from
// the user's own spending history. Heuristics only, no external ML.
package cashcheck

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cash-reconciliation-backend/internal/config"
	"cash-reconciliation-backend/internal/models"
)

// TransactionStore is the slice of the transaction store this service reads.
type TransactionStore interface {
	ListByUserInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.Transaction, error)
	ListDebitsByUserInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.Transaction, error)
}

// CashPosition is the computed cash snapshot for one user. It is never
// persisted; callers embed it in responses and notification payloads.
type CashPosition struct {
	UserID                 uuid.UUID       `json:"user_id"`
	LookbackDays           int             `json:"lookback_days"`
	LastWithdrawalDate     *time.Time      `json:"last_withdrawal_date"`
	DaysSinceWithdrawal    *int            `json:"days_since_withdrawal"`
	TotalWithdrawn         decimal.Decimal `json:"total_withdrawn"`
	TrackedCashSpend       decimal.Decimal `json:"tracked_cash_spend"`
	EstimatedUntrackedCash decimal.Decimal `json:"estimated_untracked_cash"`
	EligibleForNudge       bool            `json:"eligible_for_nudge"`
}

// Service computes cash positions and suggestions. It is stateless and safe
// to share across requests.
type Service struct {
	txStore  TransactionStore
	settings config.Settings
	now      func() time.Time
}

func NewService(txStore TransactionStore, settings config.Settings) *Service {
	return &Service{txStore: txStore, settings: settings, now: time.Now}
}

// ComputeCashPosition reconciles withdrawals against tracked cash spends over
// the configured lookback window. The result is deterministic for a fixed
// transaction set and clock.
func (s *Service) ComputeCashPosition(ctx context.Context, userID uuid.UUID) (CashPosition, error) {
	now := s.now().UTC()
	from := now.AddDate(0, 0, -s.settings.LookbackDays)

	txns, err := s.txStore.ListByUserInRange(ctx, userID, from, now)
	if err != nil {
		return CashPosition{}, fmt.Errorf("list transactions: %w", err)
	}

	pos := CashPosition{
		UserID:       userID,
		LookbackDays: s.settings.LookbackDays,
	}

	var lastWithdrawal time.Time
	for i := range txns {
		tx := &txns[i]
		if malformed(tx) {
			continue
		}
		// The predicates are disjoint by wording in practice, but not enforced,
		// so partition independently rather than else-if.
		if IsCashWithdrawal(tx) {
			pos.TotalWithdrawn = pos.TotalWithdrawn.Add(tx.Amount)
			if tx.TransactionDate.After(lastWithdrawal) {
				lastWithdrawal = tx.TransactionDate
			}
		}
		if IsCashSpend(tx) {
			pos.TrackedCashSpend = pos.TrackedCashSpend.Add(tx.Amount)
		}
	}

	if !lastWithdrawal.IsZero() {
		pos.LastWithdrawalDate = &lastWithdrawal
		days := int(math.Floor(now.Sub(lastWithdrawal).Hours() / 24))
		if days < 0 {
			days = 0
		}
		pos.DaysSinceWithdrawal = &days
	}

	pos.EstimatedUntrackedCash = pos.TotalWithdrawn.Sub(pos.TrackedCashSpend)
	if pos.EstimatedUntrackedCash.IsNegative() {
		pos.EstimatedUntrackedCash = decimal.Zero
	}

	pos.EligibleForNudge = pos.EstimatedUntrackedCash.IsPositive() &&
		pos.DaysSinceWithdrawal != nil &&
		*pos.DaysSinceWithdrawal >= s.settings.MinDaysSinceWithdrawal

	return pos, nil
}

// malformed transactions (no date, negative amount) contribute nothing rather
// than poisoning the aggregates.
func malformed(tx *models.Transaction) bool {
	return tx.TransactionDate.IsZero() || tx.Amount.IsNegative()
}
