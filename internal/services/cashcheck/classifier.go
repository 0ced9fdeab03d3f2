package cashcheck

import (
	"strings"

	"cash-reconciliation-backend/internal/models"
)

// Classification is two-stage: an exact tag match decides first, and only when
// no tag is present does the substring fallback run. Keeping the stages apart
// lets the fallback be swapped out without touching tagged transactions.

var cashWithdrawKeywords = []string{"atm", "cash withdrawal", "withdrawal", "withdraw", "cash withdraw"}

// IsCashWithdrawal reports whether tx represents cash leaving the account,
// e.g. an ATM withdrawal.
func IsCashWithdrawal(tx *models.Transaction) bool {
	if tx.Type != models.TypeDebit {
		return false
	}
	if hasTag(tx, "cash_withdrawal") {
		return true
	}
	text := joinNormalized(tx.Description, tx.MerchantName, tx.MerchantCategory)
	for _, k := range cashWithdrawKeywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// IsCashSpend reports whether tx is a cash-tendered expense, either tagged as
// such or described as cash in a manual entry.
func IsCashSpend(tx *models.Transaction) bool {
	if tx.Type != models.TypeDebit {
		return false
	}
	if hasTag(tx, "cash") || hasTag(tx, "cash_spend") {
		return true
	}
	return strings.Contains(joinNormalized(tx.Description, tx.Subcategory), "cash")
}

func hasTag(tx *models.Transaction, tag string) bool {
	for _, t := range tx.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func joinNormalized(parts ...string) string {
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(parts, " ")
}
