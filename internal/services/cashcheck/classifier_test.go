package cashcheck

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cash-reconciliation-backend/internal/models"
)

var testDate = time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

func TestIsCashWithdrawal_TagStage(t *testing.T) {
	tx := debit(1000, testDate, withTags("cash_withdrawal"))
	assert.True(t, IsCashWithdrawal(&tx))

	// Tag decides before any text is inspected.
	tagged := debit(1000, testDate, withTags("cash_withdrawal"), withDescription("UPI transfer"))
	assert.True(t, IsCashWithdrawal(&tagged))
}

func TestIsCashWithdrawal_SubstringStage(t *testing.T) {
	cases := []struct {
		name string
		opt  func(*models.Transaction)
		want bool
	}{
		{"atm in description", withDescription("HDFC ATM NEFT"), true},
		{"withdrawal in description", withDescription("Cash Withdrawal Branch"), true},
		{"uppercase normalized", withDescription("WITHDRAW 500"), true},
		{"merchant name", func(tx *models.Transaction) { tx.MerchantName = "SBI ATM Koramangala" }, true},
		{"merchant category", withMerchantCategory("ATM"), true},
		{"unrelated", withDescription("Swiggy order"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := debit(500, testDate, tc.opt)
			assert.Equal(t, tc.want, IsCashWithdrawal(&tx))
		})
	}
}

func TestIsCashWithdrawal_RejectsCredit(t *testing.T) {
	tx := debit(1000, testDate, withTags("cash_withdrawal"))
	tx.Type = models.TypeCredit
	assert.False(t, IsCashWithdrawal(&tx))
}

func TestIsCashSpend(t *testing.T) {
	cases := []struct {
		name string
		opt  func(*models.Transaction)
		want bool
	}{
		{"cash tag", withTags("cash"), true},
		{"cash_spend tag", withTags("cash_spend"), true},
		{"both tags", withTags("cash", "cash_spend"), true},
		{"cash in description", withDescription("Groceries - cash"), true},
		{"cash in subcategory", withSubcategory("cash expense"), true},
		{"unrelated tag", withTags("online"), false},
		{"no signal", withDescription("Card payment"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := debit(200, testDate, tc.opt)
			assert.Equal(t, tc.want, IsCashSpend(&tx))
		})
	}
}

func TestIsCashSpend_RejectsCredit(t *testing.T) {
	tx := debit(200, testDate, withTags("cash"))
	tx.Type = models.TypeCredit
	assert.False(t, IsCashSpend(&tx))
}
