// Package schedule computes day-off suggestions for upcoming birthdays.
// It is pure: no I/O, no clock reads — the caller supplies "today".
package schedule

import (
	"time"

	"github.com/dayoffhub/dayoff-notifier/internal/domain"
)

// LookaheadDays is the length of the eligibility window. A birthday is
// eligible when it falls within [today, today+LookaheadDays], both ends
// inclusive, computed on calendar dates.
const LookaheadDays = 20

// maxScanDays bounds the forward walk past weekends and holidays.
// Five days covers a holiday immediately followed by a weekend (or the
// reverse); anything longer is a configuration gap surfaced via
// RuleUnresolved rather than scanned indefinitely.
const maxScanDays = 5

// HolidaySet answers recurring (day, month) holiday membership.
type HolidaySet map[[2]int]struct{}

// NewHolidaySet builds a HolidaySet from holiday rules.
func NewHolidaySet(rules []domain.HolidayRule) HolidaySet {
	s := make(HolidaySet, len(rules))
	for _, r := range rules {
		s[[2]int{r.Day, int(r.Month)}] = struct{}{}
	}
	return s
}

// Contains reports whether t's day and month match a registered holiday.
func (s HolidaySet) Contains(t time.Time) bool {
	_, ok := s[[2]int{t.Day(), int(t.Month())}]
	return ok
}

// Suggestion is the engine's verdict for a single person.
type Suggestion struct {
	Eligible bool
	Date     time.Time
	Rule     domain.Rule
}

// Suggest resolves the next occurrence of a birthday to a valid day-off
// date. The walk accepts the first day that is neither a weekend nor a
// holiday; while walking, a holiday classification always overwrites a
// prior weekend one, so the label reflects the strongest reason the
// date moved.
func Suggest(today time.Time, birthMonth time.Month, birthDay int, holidays HolidaySet) Suggestion {
	today = Midnight(today)

	next := time.Date(today.Year(), birthMonth, birthDay, 0, 0, 0, 0, today.Location())
	if next.Before(today) {
		next = time.Date(today.Year()+1, birthMonth, birthDay, 0, 0, 0, 0, today.Location())
	}

	windowEnd := today.AddDate(0, 0, LookaheadDays)
	if next.After(windowEnd) {
		return Suggestion{}
	}

	rule := domain.RuleOriginal
	candidate := next
	for i := 0; i < maxScanDays; i++ {
		weekend := candidate.Weekday() == time.Saturday || candidate.Weekday() == time.Sunday
		holiday := holidays.Contains(candidate)

		if !weekend && !holiday {
			return Suggestion{Eligible: true, Date: candidate, Rule: rule}
		}
		if holiday {
			rule = domain.RuleHoliday
		} else if rule == domain.RuleOriginal {
			rule = domain.RuleWeekend
		}
		candidate = candidate.AddDate(0, 0, 1)
	}

	// No clear day within the scan: keep the birthday itself and flag it.
	return Suggestion{Eligible: true, Date: next, Rule: domain.RuleUnresolved}
}

// Midnight truncates t to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
