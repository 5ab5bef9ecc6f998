// Package sender holds the outbound channel adapters. The delivery
// worker only needs a send capability per channel; everything about
// transport, auth, and timeouts lives behind these interfaces.
package sender

import "context"

// ChatSender delivers a chat message to a normalized phone number.
// Implementations must enforce their own call-level timeout: a hung
// send blocks the whole delivery batch.
type ChatSender interface {
	SendChat(ctx context.Context, number, body string) error
}

// EmailSender delivers a plain-text email.
type EmailSender interface {
	SendEmail(ctx context.Context, address, subject, body string) error
}
