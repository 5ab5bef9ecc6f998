package domain

import "errors"

// Sentinel errors used throughout the application.
// Handlers translate these to HTTP status codes via a single mapError function.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidChannel    = errors.New("invalid channel: must be CHAT or EMAIL")
	ErrInvalidStatus     = errors.New("invalid status: must be PENDING, SENT, ERROR, or RESPONDED")
	ErrInvalidRecipient  = errors.New("recipient address must not be empty")
	ErrInvalidTransition = errors.New("status transition not permitted for this writer")
	ErrInvalidDate       = errors.New("date must be in YYYY-MM-DD form")
)
