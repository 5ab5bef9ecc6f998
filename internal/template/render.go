// Package template renders notice messages by substituting a fixed
// token set into operator-configurable templates. Pure, no failure
// modes: missing context values render as empty strings.
package template

import (
	"fmt"
	"strings"
	"time"

	"github.com/dayoffhub/dayoff-notifier/internal/domain"
)

// Tokens recognised in templates. Each is replaced globally.
const (
	TokenSupervisorName = "[SUPERVISOR NAME]"
	TokenPersonName     = "[PERSON NAME]"
	TokenBirthday       = "[BIRTHDAY]"
	TokenDayOffDate     = "[DAYOFF DATE]"
	TokenAppliedRule    = "[APPLIED RULE]"
	TokenLink           = "[CONFIRMATION LINK]"
)

// Context carries the values substituted into a template.
type Context struct {
	SupervisorName string
	PersonName     string
	Birthday       string // DD/MM
	DayOff         string // DD/MM/YYYY
	Rule           domain.Rule
	Link           string
}

// Render substitutes every token occurrence in tpl with the matching
// context value. The applied-rule token expands to a full explanation
// sentence only when the date was actually moved; otherwise it renders
// as an empty string so unadjusted notices read naturally.
func Render(tpl string, ctx Context) string {
	values := map[string]string{
		TokenSupervisorName: ctx.SupervisorName,
		TokenPersonName:     ctx.PersonName,
		TokenBirthday:       ctx.Birthday,
		TokenDayOffDate:     ctx.DayOff,
		TokenAppliedRule:    ruleExplanation(ctx.Rule),
		TokenLink:           ctx.Link,
	}

	out := tpl
	for token, value := range values {
		out = strings.ReplaceAll(out, token, value)
	}
	return out
}

// ruleExplanation expands an adjusted rule into the sentence embedded
// in the message. The trailing space separates it from whatever the
// template places after the token.
func ruleExplanation(r domain.Rule) string {
	if !r.Adjusted() {
		return ""
	}

	var day string
	switch r {
	case domain.RuleWeekend:
		day = "weekend day"
	case domain.RuleHoliday:
		day = "holiday"
	}
	return fmt.Sprintf("The birthday falls on a %s, so the suggested date is the next business day. ", day)
}

// FormatBirthday renders a birth month/day as DD/MM.
func FormatBirthday(month time.Month, day int) string {
	return fmt.Sprintf("%02d/%02d", day, int(month))
}

// FormatDayOff renders a suggested date as DD/MM/YYYY.
func FormatDayOff(t time.Time) string {
	return t.Format("02/01/2006")
}

// ISODate renders a date as YYYY-MM-DD for persistence and links.
func ISODate(t time.Time) string {
	return t.Format("2006-01-02")
}
