// Package period tracks the calendar month currently being viewed.
//
// The selector holds a single date standing in for "any day in the
// viewed month"; only the year and 1-based month are ever sent to the
// backend. Every mutation notifies subscribers, which is how the
// transaction store knows to refetch. The selector itself performs no
// I/O, but mutations arrive from goroutines the UI spawns, so the
// viewed date is guarded by a mutex.
package period

import (
	"fmt"
	"sync"
	"time"
)

const dateLayout = "2006-01-02"

// Selector holds the viewed month and notifies observers on change.
type Selector struct {
	mu        sync.Mutex
	current   time.Time
	observers []func()
}

// NewSelector starts at today's date.
func NewSelector() *Selector {
	return &Selector{current: time.Now()}
}

// NewSelectorAt starts at an explicit date; used by tests and deep links.
func NewSelectorAt(t time.Time) *Selector {
	return &Selector{current: t}
}

// Current returns the date representing the viewed month.
func (s *Selector) Current() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Year returns the viewed year.
func (s *Selector) Year() int {
	return s.Current().Year()
}

// Month returns the viewed month, 1-based.
func (s *Selector) Month() int {
	return int(s.Current().Month())
}

// Previous shifts the view back one month.
func (s *Selector) Previous() {
	s.update(func(t time.Time) time.Time { return addMonths(t, -1) })
}

// Next shifts the view forward one month.
func (s *Selector) Next() {
	s.update(func(t time.Time) time.Time { return addMonths(t, 1) })
}

// GoToToday resets the view to the current date.
func (s *Selector) GoToToday() {
	s.update(func(time.Time) time.Time { return time.Now() })
}

// SetExplicit parses a YYYY-MM-DD string and jumps to that date.
// Parsing happens in local time so reading the date back cannot shift
// it across a day boundary, and impossible dates like 2024-02-31 are
// rejected rather than normalized into the following month.
func (s *Selector) SetExplicit(dateString string) error {
	parsed, err := time.ParseInLocation(dateLayout, dateString, time.Local)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", dateString, err)
	}

	s.update(func(time.Time) time.Time { return parsed })
	return nil
}

// Subscribe registers fn to run after every period change.
func (s *Selector) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// update swaps the viewed date under the lock, then notifies a
// snapshot of the observers with the lock released. Observers block on
// network calls; they must never run while the lock is held.
func (s *Selector) update(f func(time.Time) time.Time) {
	s.mu.Lock()
	s.current = f(s.current)
	observers := make([]func(), len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, fn := range observers {
		fn()
	}
}

// addMonths shifts t by delta months, clamping the day to the last day
// of the target month. time.AddDate would roll Jan 31 into March; for
// a month selector that skips February entirely.
func addMonths(t time.Time, delta int) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month+time.Month(delta), 1, 0, 0, 0, 0, t.Location())

	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}

	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
