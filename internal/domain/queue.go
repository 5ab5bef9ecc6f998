package domain

import "time"

// Channel is the delivery channel for a queue entry.
type Channel string

const (
	ChannelChat  Channel = "CHAT"
	ChannelEmail Channel = "EMAIL"
)

func (c Channel) IsValid() bool {
	switch c {
	case ChannelChat, ChannelEmail:
		return true
	}
	return false
}

// RecipientType describes who a queue entry is addressed to.
// Only supervisors receive notices today; the column exists so the
// admin UI can grow other recipient kinds without a schema change.
type RecipientType string

const RecipientSupervisor RecipientType = "SUPERVISOR"

// Status tracks the lifecycle of a queue entry.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusSent      Status = "SENT"
	StatusError     Status = "ERROR"
	StatusResponded Status = "RESPONDED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusSent, StatusError, StatusResponded:
		return true
	}
	return false
}

// Writer identifies which collaborator is attempting a status transition.
// Three independent writers touch queue rows: the scheduler run creates
// them, the delivery worker moves PENDING rows to a terminal send state,
// and the external confirmation flow records supervisor responses.
type Writer string

const (
	WriterDelivery     Writer = "delivery"
	WriterConfirmation Writer = "confirmation"
)

// CanTransition is the single state-transition rule shared by every
// writer. The delivery worker may only resolve PENDING rows; the
// confirmation flow may mark any row RESPONDED (a supervisor can answer
// the form even after a dispatch error was recorded).
func CanTransition(w Writer, from, to Status) bool {
	switch w {
	case WriterDelivery:
		return from == StatusPending && (to == StatusSent || to == StatusError)
	case WriterConfirmation:
		return to == StatusResponded
	}
	return false
}

// Rule classifies why a suggested day-off date differs from the
// literal birthday.
type Rule string

const (
	RuleOriginal Rule = "Original"
	RuleWeekend  Rule = "Weekend"
	RuleHoliday  Rule = "Holiday"

	// RuleUnresolved means no clear weekday was found within the
	// 5-day scan; the original birthday is kept and the label flags
	// the row for manual handling.
	RuleUnresolved Rule = "Original (unresolved)"
)

// Adjusted reports whether the suggested date was actually moved off
// the birthday. Unresolved rows keep the original date, so they count
// as unadjusted for rendering purposes.
func (r Rule) Adjusted() bool {
	return r == RuleWeekend || r == RuleHoliday
}

// QueueEntry is a single rendered notice waiting for (or past) delivery.
type QueueEntry struct {
	ID            string        `json:"id"`
	Channel       Channel       `json:"channel"`
	RecipientType RecipientType `json:"recipient_type"`
	Recipient     string        `json:"recipient"`
	Subject       *string       `json:"subject,omitempty"`
	Body          string        `json:"body"`
	SuggestedDate time.Time     `json:"suggested_date"`
	AppliedRule   Rule          `json:"applied_rule"`
	PersonID      string        `json:"person_id"`
	PersonName    string        `json:"person_name"`
	Status        Status        `json:"status"`
	ErrorLog      *string       `json:"error_log,omitempty"`
	ConfirmedDate *time.Time    `json:"confirmed_date,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Validate checks the creation-time invariants: a known channel, a
// non-empty recipient address, and a valid status.
func (e *QueueEntry) Validate() error {
	if !e.Channel.IsValid() {
		return ErrInvalidChannel
	}
	if e.Recipient == "" {
		return ErrInvalidRecipient
	}
	if !e.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

// ListFilter holds query parameters for paginated queue listing.
type ListFilter struct {
	Status  *Status
	Channel *Channel
	Page    int
	Limit   int
}

// StatusCounts is the per-status breakdown shown on the admin dashboard.
type StatusCounts struct {
	Pending   int `json:"pending"`
	Sent      int `json:"sent"`
	Error     int `json:"error"`
	Responded int `json:"responded"`
}
