package domain

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		writer  Writer
		from    Status
		to      Status
		allowed bool
	}{
		{"delivery resolves pending to sent", WriterDelivery, StatusPending, StatusSent, true},
		{"delivery resolves pending to error", WriterDelivery, StatusPending, StatusError, true},
		{"delivery cannot touch sent rows", WriterDelivery, StatusSent, StatusSent, false},
		{"delivery cannot re-resolve error rows", WriterDelivery, StatusError, StatusSent, false},
		{"delivery cannot produce responded", WriterDelivery, StatusPending, StatusResponded, false},
		{"confirmation from sent", WriterConfirmation, StatusSent, StatusResponded, true},
		{"confirmation from pending", WriterConfirmation, StatusPending, StatusResponded, true},
		{"confirmation from error", WriterConfirmation, StatusError, StatusResponded, true},
		{"confirmation cannot mark sent", WriterConfirmation, StatusPending, StatusSent, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanTransition(tc.writer, tc.from, tc.to); got != tc.allowed {
				t.Fatalf("CanTransition(%s, %s, %s): expected %v, got %v",
					tc.writer, tc.from, tc.to, tc.allowed, got)
			}
		})
	}
}

func TestRuleAdjusted(t *testing.T) {
	if RuleOriginal.Adjusted() || RuleUnresolved.Adjusted() {
		t.Fatal("unmoved dates must not count as adjusted")
	}
	if !RuleWeekend.Adjusted() || !RuleHoliday.Adjusted() {
		t.Fatal("weekend and holiday rules must count as adjusted")
	}
}

func TestFromConfig_Defaults(t *testing.T) {
	got := FromConfig(map[string]string{ConfigKeyEmailSubject: "Custom: [PERSON NAME]"})

	if got.EmailSubject != "Custom: [PERSON NAME]" {
		t.Fatalf("expected custom subject, got %q", got.EmailSubject)
	}
	if got.ChatBody != DefaultChatTemplate {
		t.Fatal("expected default chat template when key absent")
	}
	if got.EmailBody != DefaultEmailBody {
		t.Fatal("expected default email body when key absent")
	}
}

func TestChannelAndStatusValidation(t *testing.T) {
	if !ChannelChat.IsValid() || !ChannelEmail.IsValid() || Channel("SMS").IsValid() {
		t.Fatal("channel validation mismatch")
	}
	if !StatusPending.IsValid() || Status("QUEUED").IsValid() {
		t.Fatal("status validation mismatch")
	}
}
