package cashcheck

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"cash-reconciliation-backend/internal/models"
)

// AmountRange is the 25th..75th percentile band of a bucket's amounts.
type AmountRange struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// Suggestion is one quick-add candidate. Probabilities across a returned list
// sum to 1.
type Suggestion struct {
	Label         string      `json:"label"`
	Subcategory   string      `json:"subcategory"`
	TypicalAmount int         `json:"typical_amount"`
	AmountRange   AmountRange `json:"amount_range"`
	Probability   float64     `json:"probability"`
}

// defaultSuggestions keep the quick-add flow usable for users with no cash
// spend history. Probabilities sum to 1 by construction.
var defaultSuggestions = []Suggestion{
	{Label: "Groceries", Subcategory: "groceries", TypicalAmount: 500, AmountRange: AmountRange{300, 700}, Probability: 0.34},
	{Label: "Food", Subcategory: "food", TypicalAmount: 200, AmountRange: AmountRange{120, 350}, Probability: 0.28},
	{Label: "Transport", Subcategory: "transport", TypicalAmount: 100, AmountRange: AmountRange{50, 200}, Probability: 0.22},
	{Label: "Misc", Subcategory: "misc", TypicalAmount: 150, AmountRange: AmountRange{80, 300}, Probability: 0.16},
}

type bucket struct {
	key     string
	weight  float64
	amounts []float64
}

// SuggestLikelyCashExpenses builds ranked quick-add suggestions from the
// user's cash spends over the configured history window. Spends on the same
// weekday as targetDate weigh more, reflecting weekly routine. A zero
// targetDate means now.
func (s *Service) SuggestLikelyCashExpenses(ctx context.Context, userID uuid.UUID, targetDate time.Time) ([]Suggestion, error) {
	if targetDate.IsZero() {
		targetDate = s.now().UTC()
	}
	from := targetDate.AddDate(0, 0, -s.settings.HistoryDays)

	debits, err := s.txStore.ListDebitsByUserInRange(ctx, userID, from, targetDate)
	if err != nil {
		return nil, fmt.Errorf("list debit transactions: %w", err)
	}

	var spends []*models.Transaction
	for i := range debits {
		if tx := &debits[i]; IsCashSpend(tx) && !malformed(tx) {
			spends = append(spends, tx)
		}
	}

	if len(spends) == 0 {
		limit := s.settings.SuggestionLimit
		if limit > len(defaultSuggestions) {
			limit = len(defaultSuggestions)
		}
		return defaultSuggestions[:limit], nil
	}

	// Bucket by subcategory, falling back to merchant category then "other".
	// Ties in the ranking keep first-seen order, so buckets are collected in
	// encounter order.
	targetWeekday := targetDate.Weekday()
	byKey := make(map[string]*bucket)
	var buckets []*bucket
	totalWeight := 0.0

	for _, tx := range spends {
		key := bucketKey(tx)
		b, ok := byKey[key]
		if !ok {
			b = &bucket{key: key}
			byKey[key] = b
			buckets = append(buckets, b)
		}
		w := 1.0
		if tx.TransactionDate.Weekday() == targetWeekday {
			w = s.settings.WeekdayBoost
		}
		b.weight += w
		totalWeight += w
		b.amounts = append(b.amounts, tx.Amount.InexactFloat64())
	}

	if totalWeight == 0 {
		totalWeight = 1.0
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].weight > buckets[j].weight
	})

	retain := s.settings.SuggestionLimit
	if retain < 10 {
		retain = 10
	}
	if retain > len(buckets) {
		retain = len(buckets)
	}

	suggestions := make([]Suggestion, 0, retain)
	for _, b := range buckets[:retain] {
		sort.Float64s(b.amounts)
		p25 := nearestRank(b.amounts, 0.25)
		p50 := nearestRank(b.amounts, 0.50)
		p75 := nearestRank(b.amounts, 0.75)

		low := roundHalfUp(p25)
		if low < 0 {
			low = 0
		}
		high := roundHalfUp(p75)
		if high < low {
			high = low
		}

		suggestions = append(suggestions, Suggestion{
			Label:         labelFor(b.key),
			Subcategory:   b.key,
			TypicalAmount: roundHalfUp(p50),
			AmountRange:   AmountRange{Low: low, High: high},
			Probability:   b.weight / totalWeight,
		})
	}

	if len(suggestions) > s.settings.SuggestionLimit {
		suggestions = suggestions[:s.settings.SuggestionLimit]
	}

	// Re-normalize the truncated list so the returned probabilities sum to 1.
	probSum := 0.0
	for _, sg := range suggestions {
		probSum += sg.Probability
	}
	if probSum == 0 {
		probSum = 1.0
	}
	for i := range suggestions {
		suggestions[i].Probability /= probSum
	}

	return suggestions, nil
}

func bucketKey(tx *models.Transaction) string {
	if key := strings.ToLower(strings.TrimSpace(tx.Subcategory)); key != "" {
		return key
	}
	if key := strings.ToLower(strings.TrimSpace(tx.MerchantCategory)); key != "" {
		return key
	}
	return "other"
}

// nearestRank returns the observed value at round((n-1)*p). Rounding is
// half-up so the chosen index never depends on the platform's float rounding
// convention. The input must be sorted and non-empty.
func nearestRank(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	idx := roundHalfUp(float64(n-1) * p)
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return sorted[idx]
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// labelFor turns a bucket key into a display label: underscores become
// spaces, each word is capitalized.
func labelFor(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
