package member

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// reminderDays are the days-left checkpoints at which a reminder goes out.
// Members are nudged five days out, one day out, and on expiry day.
var reminderDays = map[int]bool{5: true, 1: true, 0: true}

// SweeperConfig holds sweep settings.
type SweeperConfig struct {
	// WindowDays is how far ahead the sweep scans for expiring memberships.
	WindowDays int
}

// Sweeper runs the periodic expiry reminder pass: it scans active members
// whose membership lapses within the window and sends a reminder to those
// hitting a checkpoint day. Sends are strictly sequential; each one runs to
// completion before the next starts.
type Sweeper struct {
	store    Store
	notifier Notifier
	config   SweeperConfig
	now      func() time.Time
}

// NewSweeper creates a new reminder sweeper.
func NewSweeper(store Store, notifier Notifier, cfg SweeperConfig) *Sweeper {
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = expiringWindowDays
	}
	return &Sweeper{
		store:    store,
		notifier: notifier,
		config:   cfg,
		now:      time.Now,
	}
}

// Sweep performs one reminder pass. It returns an error only when the
// member scan itself fails; individual send outcomes are logged and counted
// but never abort the pass.
func (s *Sweeper) Sweep(ctx context.Context) error {
	today := dateOnly(s.now())
	horizon := today.AddDate(0, 0, s.config.WindowDays)

	members, err := s.store.ListExpiringBetween(ctx, today, horizon)
	if err != nil {
		return fmt.Errorf("listing expiring members: %w", err)
	}

	sent := 0
	for _, m := range members {
		if m.EndDate == nil {
			continue
		}
		daysLeft := daysBetween(today, dateOnly(*m.EndDate))
		if !reminderDays[daysLeft] {
			continue
		}

		result := s.notifier.SendExpiryReminder(ctx, m.NotificationView(), daysLeft)
		if result.Success {
			sent++
		} else {
			slog.Error("reminder delivery failed",
				"member_id", m.ID,
				"days_left", daysLeft,
				"error", result.Error,
			)
		}
	}

	slog.Info("reminder sweep complete",
		"scanned", len(members),
		"sent", sent,
		"window_days", s.config.WindowDays,
	)
	return nil
}
