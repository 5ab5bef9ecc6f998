package schedule_test

import (
	"testing"
	"time"

	"github.com/dayoffhub/dayoff-notifier/internal/domain"
	"github.com/dayoffhub/dayoff-notifier/internal/schedule"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// 2024-06-10 is a Monday.
var monday = date(2024, time.June, 10)

func holidays(days ...[2]int) schedule.HolidaySet {
	rules := make([]domain.HolidayRule, len(days))
	for i, d := range days {
		rules[i] = domain.HolidayRule{Day: d[0], Month: d[1]}
	}
	return schedule.NewHolidaySet(rules)
}

func TestSuggest_Rules(t *testing.T) {
	tests := []struct {
		name       string
		today      time.Time
		birthMonth time.Month
		birthDay   int
		holidays   schedule.HolidaySet
		wantDate   time.Time
		wantRule   domain.Rule
	}{
		{
			name:  "clear weekday keeps original date",
			today: monday, birthMonth: time.June, birthDay: 12,
			holidays: holidays(),
			wantDate: date(2024, time.June, 12), wantRule: domain.RuleOriginal,
		},
		{
			name:  "saturday birthday moves to monday",
			today: monday, birthMonth: time.June, birthDay: 15,
			holidays: holidays(),
			wantDate: date(2024, time.June, 17), wantRule: domain.RuleWeekend,
		},
		{
			name:  "holiday then weekend keeps holiday label",
			today: monday, birthMonth: time.June, birthDay: 14,
			holidays: holidays([2]int{14, 6}),
			wantDate: date(2024, time.June, 17), wantRule: domain.RuleHoliday,
		},
		{
			name:  "holiday after weekend overwrites weekend label",
			today: monday, birthMonth: time.June, birthDay: 15,
			holidays: holidays([2]int{17, 6}),
			wantDate: date(2024, time.June, 18), wantRule: domain.RuleHoliday,
		},
		{
			name:  "five colliding days fall back to original",
			today: monday, birthMonth: time.June, birthDay: 15,
			holidays: holidays([2]int{17, 6}, [2]int{18, 6}, [2]int{19, 6}),
			wantDate: date(2024, time.June, 15), wantRule: domain.RuleUnresolved,
		},
		{
			name:  "year rollover for january birthday in december",
			today: date(2024, time.December, 25), birthMonth: time.January, birthDay: 6,
			holidays: holidays(),
			wantDate: date(2025, time.January, 6), wantRule: domain.RuleOriginal,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := schedule.Suggest(tc.today, tc.birthMonth, tc.birthDay, tc.holidays)
			if !got.Eligible {
				t.Fatal("expected suggestion to be eligible")
			}
			if !got.Date.Equal(tc.wantDate) {
				t.Fatalf("expected date %s, got %s", tc.wantDate, got.Date)
			}
			if got.Rule != tc.wantRule {
				t.Fatalf("expected rule %q, got %q", tc.wantRule, got.Rule)
			}
		})
	}
}

func TestSuggest_EligibilityWindow(t *testing.T) {
	none := holidays()

	tests := []struct {
		name       string
		birthMonth time.Month
		birthDay   int
		eligible   bool
	}{
		{"birthday exactly today", time.June, 10, true},
		{"birthday at window end (+20 days)", time.June, 30, true},
		{"birthday one day past the window", time.July, 1, false},
		{"birthday yesterday rolls to next year", time.June, 9, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := schedule.Suggest(monday, tc.birthMonth, tc.birthDay, none)
			if got.Eligible != tc.eligible {
				t.Fatalf("expected eligible=%v, got %v", tc.eligible, got.Eligible)
			}
		})
	}
}

func TestSuggest_TruncatesTimeOfDay(t *testing.T) {
	lateToday := time.Date(2024, time.June, 10, 23, 45, 0, 0, time.UTC)

	got := schedule.Suggest(lateToday, time.June, 10, holidays())
	if !got.Eligible {
		t.Fatal("a birthday on today's date must be eligible regardless of wall-clock time")
	}
	if !got.Date.Equal(monday) {
		t.Fatalf("expected %s, got %s", monday, got.Date)
	}
}

func TestHolidaySet_Contains(t *testing.T) {
	set := holidays([2]int{25, 12})

	if !set.Contains(date(2030, time.December, 25)) {
		t.Fatal("expected recurring holiday to match any year")
	}
	if set.Contains(date(2024, time.December, 26)) {
		t.Fatal("unexpected holiday match")
	}
}
