// Package forecast derives a daily consumption rate from an item's
// depletion history and projects the date its stock runs out.
package forecast

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/pantrykeep/pantry/pkg/types"
)

// RateWindow is the trailing period of history considered predictive.
// Depleting events older than this are ignored when estimating the rate.
const RateWindow = 30 * 24 * time.Hour

// UrgentDays is the remaining-days threshold at or below which a
// prediction is classified as urgent.
const UrgentDays = 3

// minEntries is the smallest number of depleting events a rate can be
// derived from; a single point has no slope.
const minEntries = 2

// minSpanDays guards against near-zero divisors: events spanning less
// than one day produce unstable rates and yield no estimate instead.
const minSpanDays = 1.0

// No-result outcomes. These are normal, expected conditions that callers
// handle by omitting the forecast, not failures.
var (
	ErrInsufficientData = errors.New("insufficient history to estimate a rate")
	ErrNoPrediction     = errors.New("no run-out prediction available")
)

// HistorySource supplies the recorded depletion entries for an item in
// insertion order.
type HistorySource interface {
	EntriesFor(itemID int64) ([]*types.HistoryEntry, error)
}

// Prediction is a projected stock-out: the whole days until the item's
// quantity reaches zero and the absolute date that falls on.
type Prediction struct {
	DaysRemaining int       `json:"days_remaining"`
	Date          time.Time `json:"date"`
}

// Urgent reports whether the prediction falls within UrgentDays.
func (p Prediction) Urgent() bool {
	return p.DaysRemaining <= UrgentDays
}

// Engine computes consumption rates and run-out predictions against a
// history source. Its methods are pure queries and may be called at
// arbitrary frequency.
type Engine struct {
	history HistorySource
	now     func() time.Time
}

// NewEngine creates an Engine reading from the given history source.
func NewEngine(history HistorySource) *Engine {
	return &Engine{
		history: history,
		now:     time.Now,
	}
}

// ConsumptionRate estimates the item's average consumption in units per
// day from depleting events (change < 0) within the trailing RateWindow.
// Entries are sorted by timestamp before the span is measured, so an
// out-of-order log (clock skew, merged devices) cannot produce a negative
// span. Returns ErrInsufficientData when fewer than two qualifying events
// remain after windowing, or when they span less than one day.
func (e *Engine) ConsumptionRate(itemID int64) (float64, error) {
	entries, err := e.history.EntriesFor(itemID)
	if err != nil {
		return 0, fmt.Errorf("fetching history for item %d: %w", itemID, err)
	}

	depleting := make([]*types.HistoryEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Change < 0 {
			depleting = append(depleting, entry)
		}
	}
	if len(depleting) < minEntries {
		return 0, ErrInsufficientData
	}

	cutoff := e.now().Add(-RateWindow)
	recent := depleting[:0]
	for _, entry := range depleting {
		if !entry.Timestamp.Before(cutoff) {
			recent = append(recent, entry)
		}
	}
	if len(recent) < minEntries {
		return 0, ErrInsufficientData
	}

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Timestamp.Before(recent[j].Timestamp)
	})

	span := recent[len(recent)-1].Timestamp.Sub(recent[0].Timestamp)
	daysDiff := span.Hours() / 24
	if daysDiff < minSpanDays {
		return 0, ErrInsufficientData
	}

	total := 0
	for _, entry := range recent {
		total += -entry.Change
	}

	return float64(total) / daysDiff, nil
}

// PredictRunOut projects when the item's stock reaches zero at the current
// consumption rate. Returns ErrNoPrediction when the item is already at
// zero, when no rate can be estimated, or when the rate is zero.
func (e *Engine) PredictRunOut(item *types.Item) (Prediction, error) {
	if item.Quantity == 0 {
		return Prediction{}, ErrNoPrediction
	}

	rate, err := e.ConsumptionRate(item.ItemID)
	if err != nil {
		if errors.Is(err, ErrInsufficientData) {
			return Prediction{}, ErrNoPrediction
		}
		return Prediction{}, err
	}
	if rate == 0 {
		return Prediction{}, ErrNoPrediction
	}

	days := int(math.Floor(float64(item.Quantity) / rate))
	return Prediction{
		DaysRemaining: days,
		Date:          e.now().AddDate(0, 0, days),
	}, nil
}
