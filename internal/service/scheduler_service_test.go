package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dayoffhub/dayoff-notifier/internal/domain"
	"github.com/dayoffhub/dayoff-notifier/internal/repository"
	"github.com/dayoffhub/dayoff-notifier/internal/service"
)

// 2024-06-10 is a Monday; a 06-15 birthday lands on Saturday.
var today = time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

func newScheduler() (*service.SchedulerService, *repository.MockQueueRepository, *repository.MockDirectoryRepository) {
	queue := repository.NewMockQueueRepository()
	dir := repository.NewMockDirectoryRepository()
	svc := service.NewSchedulerService(queue, dir, "", zap.NewNop(), nil)
	return svc, queue, dir
}

func person(name string, month time.Month, day int, sup *domain.Supervisor) *domain.Person {
	return &domain.Person{
		ID:         "id-" + name,
		Name:       name,
		BirthDate:  time.Date(1990, month, day, 0, 0, 0, 0, time.UTC),
		Supervisor: sup,
	}
}

func listEntries(t *testing.T, queue *repository.MockQueueRepository) []*domain.QueueEntry {
	t.Helper()
	entries, _, err := queue.List(context.Background(), domain.ListFilter{Page: 1, Limit: 100})
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	return entries
}

func TestRun_ChannelsFollowSupervisorAddresses(t *testing.T) {
	tests := []struct {
		name         string
		supervisor   *domain.Supervisor
		wantRows     int
		wantChannels []domain.Channel
	}{
		{
			name:         "phone only creates one chat row",
			supervisor:   &domain.Supervisor{Name: "Dana", Phone: "5511999990000"},
			wantRows:     1,
			wantChannels: []domain.Channel{domain.ChannelChat},
		},
		{
			name:         "phone and email create two rows",
			supervisor:   &domain.Supervisor{Name: "Dana", Phone: "5511999990000", Email: "dana@example.com"},
			wantRows:     2,
			wantChannels: []domain.Channel{domain.ChannelChat, domain.ChannelEmail},
		},
		{
			name:       "no reachable address creates nothing",
			supervisor: &domain.Supervisor{Name: "Dana"},
			wantRows:   0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, queue, dir := newScheduler()
			dir.People = []*domain.Person{person("Alex", time.June, 12, tc.supervisor)}

			report, err := svc.Run(context.Background(), today)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if report.Processed != 1 {
				t.Fatalf("expected 1 eligible person, got %d", report.Processed)
			}
			if report.Created != tc.wantRows {
				t.Fatalf("expected %d rows, got %d", tc.wantRows, report.Created)
			}

			entries := listEntries(t, queue)
			if len(entries) != tc.wantRows {
				t.Fatalf("expected %d stored entries, got %d", tc.wantRows, len(entries))
			}
			for i, ch := range tc.wantChannels {
				if entries[i].Channel != ch {
					t.Fatalf("entry %d: expected channel %s, got %s", i, ch, entries[i].Channel)
				}
				if entries[i].Status != domain.StatusPending {
					t.Fatalf("entry %d: expected PENDING, got %s", i, entries[i].Status)
				}
			}
		})
	}
}

func TestRun_WeekendBirthdayEndToEnd(t *testing.T) {
	svc, queue, dir := newScheduler()
	dir.People = []*domain.Person{
		person("Alex", time.June, 15, &domain.Supervisor{Name: "Dana", Phone: "5511999990000"}),
	}

	report, err := svc.Run(context.Background(), today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Created != 1 {
		t.Fatalf("expected 1 entry, got %d", report.Created)
	}

	e := listEntries(t, queue)[0]
	wantDate := time.Date(2024, time.June, 17, 0, 0, 0, 0, time.UTC)
	if !e.SuggestedDate.Equal(wantDate) {
		t.Fatalf("expected suggested date %s, got %s", wantDate, e.SuggestedDate)
	}
	if e.AppliedRule != domain.RuleWeekend {
		t.Fatalf("expected Weekend rule, got %s", e.AppliedRule)
	}
	if !strings.Contains(e.Body, "17/06/2024") {
		t.Fatalf("expected rendered day-off date in body, got %q", e.Body)
	}
	if !strings.Contains(e.Body, "Dana") || !strings.Contains(e.Body, "Alex") {
		t.Fatalf("expected names in rendered body, got %q", e.Body)
	}
	if !strings.Contains(e.Body, "2024-06-17") {
		t.Fatalf("expected ISO date in confirmation link, got %q", e.Body)
	}
}

func TestRun_EmailEntryCarriesRenderedSubject(t *testing.T) {
	svc, queue, dir := newScheduler()
	dir.People = []*domain.Person{
		person("Alex", time.June, 12, &domain.Supervisor{Name: "Dana", Email: "dana@example.com"}),
	}

	if _, err := svc.Run(context.Background(), today); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e := listEntries(t, queue)[0]
	if e.Channel != domain.ChannelEmail {
		t.Fatalf("expected EMAIL entry, got %s", e.Channel)
	}
	if e.Subject == nil || !strings.Contains(*e.Subject, "Alex") {
		t.Fatalf("expected rendered subject mentioning the person, got %v", e.Subject)
	}
}

func TestRun_NoEligiblePersons(t *testing.T) {
	svc, _, dir := newScheduler()
	// Birthday far outside the 20-day window.
	dir.People = []*domain.Person{
		person("Alex", time.December, 25, &domain.Supervisor{Name: "Dana", Phone: "123"}),
	}

	report, err := svc.Run(context.Background(), today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Processed != 0 || report.Created != 0 {
		t.Fatalf("expected empty report, got %+v", report)
	}
	if !strings.Contains(report.Summary(), "no eligible") {
		t.Fatalf("expected a distinct no-eligible summary, got %q", report.Summary())
	}
}

func TestRun_InsertFailuresDoNotAbortTheRun(t *testing.T) {
	svc, queue, dir := newScheduler()
	queue.CreateErr = errors.New("insert rejected")
	dir.People = []*domain.Person{
		person("Alex", time.June, 12, &domain.Supervisor{Name: "Dana", Phone: "111"}),
		person("Bruna", time.June, 13, &domain.Supervisor{Name: "Dana", Phone: "222"}),
	}

	report, err := svc.Run(context.Background(), today)
	if err != nil {
		t.Fatalf("run must not fail atomically: %v", err)
	}
	if report.Processed != 2 {
		t.Fatalf("expected both persons attempted, got %d", report.Processed)
	}
	if report.Created != 0 || len(report.Failures) != 2 {
		t.Fatalf("expected 2 recorded failures, got created=%d failures=%v", report.Created, report.Failures)
	}
	if !strings.Contains(report.Summary(), "every enqueue failed") {
		t.Fatalf("expected all-failed summary, got %q", report.Summary())
	}
}

func TestRun_DirectoryFailureAbortsRun(t *testing.T) {
	svc, _, dir := newScheduler()
	dir.ListPeopleErr = errors.New("store down")

	if _, err := svc.Run(context.Background(), today); err == nil {
		t.Fatal("expected error when the directory is unreachable")
	}
}

func TestRunReport_SummaryPartialFailure(t *testing.T) {
	r := service.RunReport{Processed: 3, Created: 4, Failures: []string{"x", "y"}}
	s := r.Summary()
	if !strings.Contains(s, "4") || !strings.Contains(s, "2") {
		t.Fatalf("expected created and failed counts in summary, got %q", s)
	}
}
