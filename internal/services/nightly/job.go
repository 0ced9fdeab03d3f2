// Package nightly drives the batch cash reconciliation: it walks active
// users, computes each one's cash position, and stages a nudge notification
// for those who cross the materiality threshold. One user's failure never
// aborts the run.
package nightly

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"cash-reconciliation-backend/internal/config"
	"cash-reconciliation-backend/internal/models"
	"cash-reconciliation-backend/internal/services/cashcheck"
)

// CashService is the slice of the cashcheck service the job drives.
type CashService interface {
	ComputeCashPosition(ctx context.Context, userID uuid.UUID) (cashcheck.CashPosition, error)
	SuggestLikelyCashExpenses(ctx context.Context, userID uuid.UUID, targetDate time.Time) ([]cashcheck.Suggestion, error)
}

type UserStore interface {
	ListActiveIDs(ctx context.Context) ([]uuid.UUID, error)
}

type NotificationStore interface {
	Insert(ctx context.Context, n *models.Notification) error
}

// Result summarizes one reconciliation run.
type Result struct {
	Success              bool      `json:"success"`
	NotificationsCreated int       `json:"notifications_created"`
	CheckedAt            time.Time `json:"checked_at"`
	Error                string    `json:"error,omitempty"`
}

type Job struct {
	cash          CashService
	users         UserStore
	notifications NotificationStore
	settings      config.Settings
	log           zerolog.Logger
	now           func() time.Time
}

func NewJob(cash CashService, users UserStore, notifications NotificationStore, settings config.Settings, log zerolog.Logger) *Job {
	return &Job{
		cash:          cash,
		users:         users,
		notifications: notifications,
		settings:      settings,
		log:           log,
		now:           time.Now,
	}
}

// Run executes one reconciliation pass over all active users. Per-user errors
// are logged and skipped; only a failure to list users at all fails the run.
func (j *Job) Run(ctx context.Context) Result {
	checkedAt := j.now().UTC()
	j.log.Info().Msg("nightly cash reconciliation started")

	userIDs, err := j.users.ListActiveIDs(ctx)
	if err != nil {
		j.log.Error().Err(err).Msg("nightly cash reconciliation aborted: cannot list users")
		return Result{Success: false, CheckedAt: checkedAt, Error: err.Error()}
	}

	created := 0
	for _, userID := range userIDs {
		ok, err := j.processUser(ctx, userID)
		if err != nil {
			j.log.Warn().Err(err).Str("user_id", userID.String()).Msg("skipping user")
			continue
		}
		if ok {
			created++
		}
	}

	j.log.Info().Int("notifications_created", created).Int("users_checked", len(userIDs)).
		Msg("nightly cash reconciliation finished")
	return Result{Success: true, NotificationsCreated: created, CheckedAt: checkedAt}
}

// processUser computes one user's position and, if the nudge policy passes,
// persists exactly one notification. A panic inside the user's slice of work
// is converted to an error so the batch loop keeps going.
func (j *Job) processUser(ctx context.Context, userID uuid.UUID) (created bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			created = false
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, j.settings.PerUserTimeout)
	defer cancel()

	position, err := j.cash.ComputeCashPosition(ctx, userID)
	if err != nil {
		return false, err
	}

	if !j.shouldNudge(position) {
		return false, nil
	}

	suggestions, err := j.cash.SuggestLikelyCashExpenses(ctx, userID, time.Time{})
	if err != nil {
		return false, err
	}

	notification, err := j.buildNotification(userID, position, suggestions)
	if err != nil {
		return false, err
	}
	if err := j.notifications.Insert(ctx, notification); err != nil {
		return false, fmt.Errorf("insert notification: %w", err)
	}
	return true, nil
}

// shouldNudge is the batch-only gate on top of position eligibility: small
// amounts are not worth a nightly ping.
func (j *Job) shouldNudge(pos cashcheck.CashPosition) bool {
	return pos.EligibleForNudge && pos.EstimatedUntrackedCash.GreaterThanOrEqual(j.settings.NudgeThreshold)
}

// suggestionRecord is the payload form of a suggestion; the amount range is
// serialized as an ordered [low, high] pair.
type suggestionRecord struct {
	Label         string  `json:"label"`
	Subcategory   string  `json:"subcategory"`
	TypicalAmount int     `json:"typical_amount"`
	AmountRange   [2]int  `json:"amount_range"`
	Probability   float64 `json:"probability"`
}

type notificationPayload struct {
	CashPosition cashcheck.CashPosition `json:"cash_position"`
	Suggestions  []suggestionRecord     `json:"suggestions"`
}

func (j *Job) buildNotification(userID uuid.UUID, pos cashcheck.CashPosition, suggestions []cashcheck.Suggestion) (*models.Notification, error) {
	records := make([]suggestionRecord, 0, len(suggestions))
	for _, s := range suggestions {
		records = append(records, suggestionRecord{
			Label:         s.Label,
			Subcategory:   s.Subcategory,
			TypicalAmount: s.TypicalAmount,
			AmountRange:   [2]int{s.AmountRange.Low, s.AmountRange.High},
			Probability:   s.Probability,
		})
	}

	payload, err := json.Marshal(notificationPayload{CashPosition: pos, Suggestions: records})
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	untracked := pos.EstimatedUntrackedCash.StringFixed(2)
	tracked := pos.TrackedCashSpend.StringFixed(2)

	return &models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      models.NotificationTypeCashCheck,
		Title:     fmt.Sprintf("Cash check: ₹%s unaccounted", untracked),
		Message:   fmt.Sprintf("You have ₹%s untracked cash. Tracked cash spend: ₹%s. Quick-add what you spent?", untracked, tracked),
		Payload:   payload,
		IsRead:    false,
		CreatedAt: j.now().UTC(),
	}, nil
}
