package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type TransactionType string

const (
	TypeCredit TransactionType = "credit"
	TypeDebit  TransactionType = "debit"
)

type TransactionCategory string

const (
	CategoryNeeds       TransactionCategory = "needs"
	CategoryEssentials  TransactionCategory = "essentials"
	CategorySpends      TransactionCategory = "spends"
	CategoryBills       TransactionCategory = "bills"
	CategorySavings     TransactionCategory = "savings"
	CategoryInvestments TransactionCategory = "investments"
	CategoryIncome      TransactionCategory = "income"
	CategoryTransfer    TransactionCategory = "transfer"
	CategoryOther       TransactionCategory = "other"
)

type TransactionSource string

const (
	SourceManual        TransactionSource = "manual"
	SourceSMS           TransactionSource = "sms"
	SourceBankStatement TransactionSource = "bank_statement"
	SourceReceipt       TransactionSource = "receipt"
	SourceBankAPI       TransactionSource = "bank_api"
)

type Transaction struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID       `gorm:"type:uuid;index" json:"user_id"`
	Amount           decimal.Decimal `gorm:"type:numeric(14,2)" json:"amount"`
	Currency         string          `gorm:"size:3;default:INR" json:"currency"`
	Type             TransactionType `gorm:"column:transaction_type;size:10;index" json:"transaction_type"`
	Category         TransactionCategory         `gorm:"size:20" json:"category"`
	Subcategory      string                      `gorm:"size:100" json:"subcategory"`
	Tags             datatypes.JSONSlice[string] `json:"tags"`
	Description      string                      `json:"description"`
	MerchantName     string                      `gorm:"size:255" json:"merchant_name"`
	MerchantCategory string                      `gorm:"size:100" json:"merchant_category"`
	Source           TransactionSource           `gorm:"size:20" json:"source"`
	TransactionDate  time.Time                   `gorm:"column:transaction_date;index" json:"transaction_date"`
	CreatedAt        time.Time                   `json:"created_at"`
}
