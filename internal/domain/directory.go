package domain

import "time"

// Person is a staff member whose birthday drives the notices.
// Owned by the external record store; read-only to this service.
type Person struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	BirthDate  time.Time   `json:"birth_date"` // only month/day are meaningful
	Phone      string      `json:"phone"`
	Email      string      `json:"email"`
	Company    string      `json:"company"`
	Supervisor *Supervisor `json:"supervisor,omitempty"`
}

// Supervisor receives the day-off notices for their staff.
type Supervisor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// HolidayRule is a recurring, year-independent holiday.
type HolidayRule struct {
	ID          string `json:"id"`
	Day         int    `json:"day"`
	Month       int    `json:"month"`
	Description string `json:"description"`
}

// Template configuration keys in the app_config store.
const (
	ConfigKeyChatTemplate = "TEMPLATE_WHATSAPP"
	ConfigKeyEmailSubject = "TEMPLATE_EMAIL_SUBJECT"
	ConfigKeyEmailBody    = "TEMPLATE_EMAIL_BODY"
)

// Built-in templates used when the corresponding config key is absent.
const (
	DefaultChatTemplate = "Hi [SUPERVISOR NAME], [PERSON NAME] has a birthday on [BIRTHDAY]. " +
		"Suggested day-off: [DAYOFF DATE]. [APPLIED RULE]Confirm here: [CONFIRMATION LINK]"
	DefaultEmailSubject = "Day-off notice: [PERSON NAME]"
	DefaultEmailBody    = "Hi [SUPERVISOR NAME],\n\n[PERSON NAME] has a birthday on [BIRTHDAY].\n" +
		"Suggested day-off: [DAYOFF DATE].\n[APPLIED RULE]\nConfirm here: [CONFIRMATION LINK]"
)

// TemplateConfig holds the three message templates.
type TemplateConfig struct {
	ChatBody     string
	EmailSubject string
	EmailBody    string
}

// DefaultTemplates returns the built-in template set.
func DefaultTemplates() TemplateConfig {
	return TemplateConfig{
		ChatBody:     DefaultChatTemplate,
		EmailSubject: DefaultEmailSubject,
		EmailBody:    DefaultEmailBody,
	}
}

// FromConfig builds a TemplateConfig from raw app_config values,
// falling back to the defaults for any absent or empty key.
func FromConfig(values map[string]string) TemplateConfig {
	t := DefaultTemplates()
	if v := values[ConfigKeyChatTemplate]; v != "" {
		t.ChatBody = v
	}
	if v := values[ConfigKeyEmailSubject]; v != "" {
		t.EmailSubject = v
	}
	if v := values[ConfigKeyEmailBody]; v != "" {
		t.EmailBody = v
	}
	return t
}
