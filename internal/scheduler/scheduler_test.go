package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNextFire(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "before fire time fires today",
			now:  time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC),
			want: time.Date(2025, 8, 15, 23, 0, 0, 0, time.UTC),
		},
		{
			name: "after fire time rolls to tomorrow",
			now:  time.Date(2025, 8, 15, 23, 30, 0, 0, time.UTC),
			want: time.Date(2025, 8, 16, 23, 0, 0, 0, time.UTC),
		},
		{
			name: "exactly at fire time rolls to tomorrow",
			now:  time.Date(2025, 8, 15, 23, 0, 0, 0, time.UTC),
			want: time.Date(2025, 8, 16, 23, 0, 0, 0, time.UTC),
		},
		{
			name: "month boundary",
			now:  time.Date(2025, 8, 31, 23, 45, 0, 0, time.UTC),
			want: time.Date(2025, 9, 1, 23, 0, 0, 0, time.UTC),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, nextFire(tc.now, 23, 0).Equal(tc.want))
		})
	}
}

func TestRun_FiresAndStops(t *testing.T) {
	fired := make(chan struct{}, 1)
	s := New(23, 0, func(ctx context.Context) {
		select {
		case fired <- struct{}{}:
		default:
		}
	}, zerolog.Nop())

	// Pin the clock just before the fire time so the wait is milliseconds.
	base := time.Date(2025, 8, 15, 22, 59, 59, 950_000_000, time.UTC)
	start := time.Now()
	s.now = func() time.Time { return base.Add(time.Since(start)) }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not fire")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on cancel")
	}
}
