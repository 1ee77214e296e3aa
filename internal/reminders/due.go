// Package reminders computes the renewal due list from license expiry
// dates: which licenses need attention, how soon, and which notice stage
// applies.
package reminders

import (
	"sort"
	"time"

	"github.com/masaki-ito/weldreg/internal/entity"
)

// DueConfig controls the due window and the notice ladder.
type DueConfig struct {
	WindowDays       int  // include items expiring within N days
	IncludeOverdue   bool // keep already-expired items
	FirstNoticeDays  int
	SecondNoticeDays int
	FinalNoticeDays  int
}

// DefaultDueConfig mirrors the operational defaults: quarterly horizon,
// notices at 90/60/30 days.
func DefaultDueConfig() DueConfig {
	return DueConfig{
		WindowDays:       90,
		IncludeOverdue:   true,
		FirstNoticeDays:  90,
		SecondNoticeDays: 60,
		FinalNoticeDays:  30,
	}
}

// Stage names for DueItem.Stage.
const (
	StageFirst   = "first"
	StageSecond  = "second"
	StageFinal   = "final"
	StageSameDay = "same-day"
	StageOverdue = "overdue"
)

// DueItem is one license inside the due window.
type DueItem struct {
	entity.LicenseRecord
	DaysToExpiry int
	Stage        string
	NextNotice   time.Time
}

// ComputeDue filters records to those expiring within the window (or
// already overdue) and annotates them with days-to-expiry and the next
// notice milestone. Records without an expiry date are skipped. Output
// is sorted by expiry, soonest first.
func ComputeDue(records []entity.LicenseRecord, asOf time.Time, cfg DueConfig) []DueItem {
	asOf = truncate(asOf)

	var out []DueItem
	for _, rec := range records {
		if rec.ExpiryDate == nil {
			continue
		}
		exp := truncate(*rec.ExpiryDate)
		days := int(exp.Sub(asOf).Hours() / 24)
		if days > cfg.WindowDays {
			continue
		}
		if days < 0 && !cfg.IncludeOverdue {
			continue
		}
		stage, next := noticeFor(exp, asOf, cfg)
		out = append(out, DueItem{
			LicenseRecord: rec,
			DaysToExpiry:  days,
			Stage:         stage,
			NextNotice:    next,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ExpiryDate.Equal(*out[j].ExpiryDate) {
			return out[i].ExpiryDate.Before(*out[j].ExpiryDate)
		}
		return out[i].LicenseNo < out[j].LicenseNo
	})
	return out
}

// noticeFor finds the first notice milestone still ahead of asOf. When
// every milestone has passed but the license is still valid, the notice
// is same-day; only past-expiry items are overdue, with the expiry
// itself as the notice date.
func noticeFor(exp, asOf time.Time, cfg DueConfig) (string, time.Time) {
	milestones := []struct {
		stage string
		date  time.Time
	}{
		{StageFirst, exp.AddDate(0, 0, -cfg.FirstNoticeDays)},
		{StageSecond, exp.AddDate(0, 0, -cfg.SecondNoticeDays)},
		{StageFinal, exp.AddDate(0, 0, -cfg.FinalNoticeDays)},
	}
	for _, m := range milestones {
		if !m.date.Before(asOf) {
			return m.stage, m.date
		}
	}
	if !exp.Before(asOf) {
		return StageSameDay, asOf
	}
	return StageOverdue, exp
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
