package handler

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"cash-reconciliation-backend/internal/models"
	"cash-reconciliation-backend/internal/repository"
	"cash-reconciliation-backend/internal/services/cashcheck"
)

type CashCheckHandler struct {
	cash          CashService
	transactions  TransactionCreator
	notifications NotificationReader
	job           ReconciliationRunner
	log           zerolog.Logger
}

func NewCashCheckHandler(cash CashService, transactions TransactionCreator, notifications NotificationReader, job ReconciliationRunner, log zerolog.Logger) *CashCheckHandler {
	return &CashCheckHandler{
		cash:          cash,
		transactions:  transactions,
		notifications: notifications,
		job:           job,
		log:           log,
	}
}

// currentUserID resolves the authenticated user. Authentication itself is
// handled upstream; the gateway forwards the identity in X-User-ID.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetHeader("X-User-ID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid user identity"})
		return uuid.Nil, false
	}
	return id, true
}

type suggestionResponse struct {
	Label         string                `json:"label"`
	Subcategory   string                `json:"subcategory"`
	TypicalAmount int                   `json:"typical_amount"`
	AmountRange   cashcheck.AmountRange `json:"amount_range"`
	Probability   float64               `json:"probability"`
}

// Summary returns the user's cash position with quick-add suggestions. On an
// internal failure it degrades to a zero position and no suggestions instead
// of a 5xx, so the client dialog stays usable.
func (h *CashCheckHandler) Summary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	position, err := h.cash.ComputeCashPosition(c.Request.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID.String()).Msg("cash position failed")
		position = cashcheck.CashPosition{UserID: userID}
	}

	var suggestions []cashcheck.Suggestion
	if err == nil {
		suggestions, err = h.cash.SuggestLikelyCashExpenses(c.Request.Context(), userID, time.Time{})
		if err != nil {
			h.log.Error().Err(err).Str("user_id", userID.String()).Msg("suggestions failed")
		}
	}

	out := make([]suggestionResponse, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, suggestionResponse{
			Label:         s.Label,
			Subcategory:   s.Subcategory,
			TypicalAmount: s.TypicalAmount,
			AmountRange:   s.AmountRange,
			Probability:   math.Round(s.Probability*100) / 100,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":                  position.UserID,
		"lookback_days":            position.LookbackDays,
		"last_withdrawal_date":     position.LastWithdrawalDate,
		"days_since_withdrawal":    position.DaysSinceWithdrawal,
		"total_withdrawn":          position.TotalWithdrawn,
		"tracked_cash_spend":       position.TrackedCashSpend,
		"estimated_untracked_cash": position.EstimatedUntrackedCash,
		"eligible_for_nudge":       position.EligibleForNudge,
		"suggestions":              out,
	})
}

// QuickAdd records a cash expense from the nudge dialog, tagging it so future
// reconciliations pick it up.
func (h *CashCheckHandler) QuickAdd(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var payload struct {
		Amount          float64    `json:"amount"`
		Subcategory     string     `json:"subcategory"`
		Description     string     `json:"description"`
		TransactionDate *time.Time `json:"transaction_date"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if payload.Amount <= 0 || strings.TrimSpace(payload.Subcategory) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount and subcategory required"})
		return
	}

	description := payload.Description
	if description == "" {
		description = "Cash - " + payload.Subcategory
	}
	txDate := time.Now().UTC()
	if payload.TransactionDate != nil {
		txDate = *payload.TransactionDate
	}

	tx := &models.Transaction{
		ID:              uuid.New(),
		UserID:          userID,
		Amount:          decimal.NewFromFloat(payload.Amount),
		Type:            models.TypeDebit,
		Category:        categorizeSubcategory(payload.Subcategory),
		Subcategory:     payload.Subcategory,
		Tags:            datatypes.NewJSONSlice([]string{"cash", "cash_spend"}),
		Description:     description,
		Source:          models.SourceManual,
		TransactionDate: txDate,
		CreatedAt:       time.Now().UTC(),
	}

	if err := h.transactions.Create(c.Request.Context(), tx); err != nil {
		h.log.Error().Err(err).Str("user_id", userID.String()).Msg("quick-add insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save expense"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"transaction_id": tx.ID,
		"message":        fmt.Sprintf("Added cash expense: ₹%.2f for %s", payload.Amount, payload.Subcategory),
	})
}

// StillHaveCash acknowledges the user dismissing the nudge.
func (h *CashCheckHandler) StillHaveCash(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	var payload struct {
		AmountStillInWallet float64 `json:"amount_still_in_wallet"`
		Note                string  `json:"note"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Noted: you still have ₹%.2f in your wallet.", payload.AmountStillInWallet),
	})
}

// Notifications lists cash-check notifications, unread first by default.
func (h *CashCheckHandler) Notifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	unreadOnly := c.DefaultQuery("unread_only", "true") == "true"

	notifications, err := h.notifications.ListForUser(
		c.Request.Context(), userID, unreadOnly,
		[]string{models.NotificationTypeCashCheck, "info"}, 20,
	)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID.String()).Msg("list notifications failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkNotificationRead flags one of the user's notifications as read.
func (h *CashCheckHandler) MarkNotificationRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification ID"})
		return
	}

	if err := h.notifications.MarkRead(c.Request.Context(), userID, notificationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		h.log.Error().Err(err).Str("user_id", userID.String()).Msg("mark read failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RunReconciliation triggers the nightly job on demand (ops convenience; same
// code path as the scheduler).
func (h *CashCheckHandler) RunReconciliation(c *gin.Context) {
	result := h.job.Run(c.Request.Context())
	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
	}
	c.JSON(status, result)
}

// categorizeSubcategory maps a free-text subcategory onto a budget category
// via a fixed keyword table.
func categorizeSubcategory(subcategory string) models.TransactionCategory {
	switch strings.ToLower(strings.TrimSpace(subcategory)) {
	case "groceries", "food", "dining", "restaurant", "cafe":
		return models.CategoryEssentials
	case "transport", "fuel", "parking", "taxi", "uber":
		return models.CategoryNeeds
	case "shopping", "clothing", "entertainment", "movie", "games":
		return models.CategorySpends
	case "bills", "utilities", "rent", "electricity", "water":
		return models.CategoryBills
	default:
		return models.CategoryOther
	}
}
