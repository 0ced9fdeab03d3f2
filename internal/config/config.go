package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Settings holds the cash-check tunables. Defaults match the product values;
// every knob can be overridden from the environment.
type Settings struct {
	LookbackDays           int             // cash position window
	MinDaysSinceWithdrawal int             // staleness gate for nudge eligibility
	HistoryDays            int             // suggestion history window
	SuggestionLimit        int             // suggestions returned per user
	NudgeThreshold         decimal.Decimal // minimum untracked cash worth notifying about
	WeekdayBoost           float64         // weight for spends on the target weekday
	PerUserTimeout         time.Duration   // deadline per user in the nightly run
	ScheduleHour           int             // nightly job fire time (local)
	ScheduleMinute         int
}

func Load() Settings {
	return Settings{
		LookbackDays:           envInt("CASHCHECK_LOOKBACK_DAYS", 30),
		MinDaysSinceWithdrawal: envInt("CASHCHECK_MIN_DAYS_SINCE_WITHDRAWAL", 3),
		HistoryDays:            envInt("CASHCHECK_HISTORY_DAYS", 90),
		SuggestionLimit:        envInt("CASHCHECK_SUGGESTION_LIMIT", 4),
		NudgeThreshold:         envDecimal("CASHCHECK_NUDGE_THRESHOLD", decimal.NewFromInt(1000)),
		WeekdayBoost:           envFloat("CASHCHECK_WEEKDAY_BOOST", 1.6),
		PerUserTimeout:         envDuration("CASHCHECK_PER_USER_TIMEOUT", 30*time.Second),
		ScheduleHour:           envInt("CASHCHECK_SCHEDULE_HOUR", 23),
		ScheduleMinute:         envInt("CASHCHECK_SCHEDULE_MINUTE", 0),
	}
}

// InitDB opens the postgres connection from DATABASE_URL, falling back to the
// discrete DB_* variables.
func InitDB() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			envStr("DB_HOST", "localhost"),
			envStr("DB_USER", "postgres"),
			envStr("DB_PASSWORD", "postgres"),
			envStr("DB_NAME", "finance"),
			envStr("DB_PORT", "5432"),
		)
	}
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envDecimal(key string, def decimal.Decimal) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
