package template_test

import (
	"strings"
	"testing"
	"time"

	"github.com/dayoffhub/dayoff-notifier/internal/domain"
	"github.com/dayoffhub/dayoff-notifier/internal/template"
)

var baseCtx = template.Context{
	SupervisorName: "Dana",
	PersonName:     "Alex",
	Birthday:       "15/06",
	DayOff:         "17/06/2024",
	Rule:           domain.RuleWeekend,
	Link:           "https://example.com/form?x=1",
}

func TestRender_SubstitutesAllTokens(t *testing.T) {
	tpl := "Hi [SUPERVISOR NAME], [PERSON NAME] birthday [BIRTHDAY], day-off [DAYOFF DATE]. [APPLIED RULE]Confirm: [CONFIRMATION LINK]"

	got := template.Render(tpl, baseCtx)

	for _, want := range []string{"Dana", "Alex", "15/06", "17/06/2024", "https://example.com/form?x=1"} {
		if !strings.Contains(got, want) {
			t.Fatalf("rendered message missing %q: %s", want, got)
		}
	}
	if strings.Contains(got, "[") {
		t.Fatalf("unreplaced token left in output: %s", got)
	}
}

func TestRender_GlobalReplacement(t *testing.T) {
	tpl := "[PERSON NAME] and again [PERSON NAME]"

	got := template.Render(tpl, baseCtx)
	if got != "Alex and again Alex" {
		t.Fatalf("expected every occurrence replaced, got %q", got)
	}
}

func TestRender_RuleExplanation(t *testing.T) {
	tests := []struct {
		name     string
		rule     domain.Rule
		empty    bool
		contains string
	}{
		{"original renders empty clause", domain.RuleOriginal, true, ""},
		{"unresolved renders empty clause", domain.RuleUnresolved, true, ""},
		{"weekend renders explanation", domain.RuleWeekend, false, "weekend day"},
		{"holiday renders explanation", domain.RuleHoliday, false, "holiday"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := baseCtx
			ctx.Rule = tc.rule

			got := template.Render("[APPLIED RULE]", ctx)
			if tc.empty && got != "" {
				t.Fatalf("expected empty explanation, got %q", got)
			}
			if !tc.empty {
				if got == "" {
					t.Fatal("expected non-empty explanation")
				}
				if !strings.Contains(got, tc.contains) {
					t.Fatalf("expected explanation to mention %q, got %q", tc.contains, got)
				}
			}
		})
	}
}

func TestConfirmationLink_EncodesValues(t *testing.T) {
	suggested := time.Date(2024, time.June, 17, 0, 0, 0, 0, time.UTC)

	link := template.ConfirmationLink("https://forms.test/view", "Ana Souza", "p-42", suggested)

	if !strings.HasPrefix(link, "https://forms.test/view?") {
		t.Fatalf("unexpected link prefix: %s", link)
	}
	if !strings.Contains(link, "Ana+Souza") {
		t.Fatalf("expected URL-encoded person name, got %s", link)
	}
	if !strings.Contains(link, "2024-06-17") {
		t.Fatalf("expected ISO date in link, got %s", link)
	}
	if !strings.Contains(link, "p-42") {
		t.Fatalf("expected person id in link, got %s", link)
	}
}

func TestFormatters(t *testing.T) {
	if got := template.FormatBirthday(time.June, 5); got != "05/06" {
		t.Fatalf("FormatBirthday: got %q", got)
	}
	d := time.Date(2024, time.June, 17, 0, 0, 0, 0, time.UTC)
	if got := template.FormatDayOff(d); got != "17/06/2024" {
		t.Fatalf("FormatDayOff: got %q", got)
	}
	if got := template.ISODate(d); got != "2024-06-17" {
		t.Fatalf("ISODate: got %q", got)
	}
}
