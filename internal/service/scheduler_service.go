package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dayoffhub/dayoff-notifier/internal/domain"
	"github.com/dayoffhub/dayoff-notifier/internal/repository"
	"github.com/dayoffhub/dayoff-notifier/internal/schedule"
	"github.com/dayoffhub/dayoff-notifier/internal/template"
)

// RunReport summarises one scheduler run for the operator. The three
// outcomes — nobody eligible, eligible but nothing enqueued, and a
// partial/total success — are deliberately kept distinguishable.
type RunReport struct {
	Processed int      `json:"processed"` // eligible persons found
	Created   int      `json:"created"`   // queue rows written
	Failures  []string `json:"failures,omitempty"`
}

// Summary renders the operator-facing outcome line.
func (r RunReport) Summary() string {
	switch {
	case r.Processed == 0:
		return fmt.Sprintf("no eligible birthdays within the next %d days", schedule.LookaheadDays)
	case r.Created == 0 && len(r.Failures) > 0:
		return fmt.Sprintf("found %d eligible person(s) but every enqueue failed", r.Processed)
	case len(r.Failures) > 0:
		return fmt.Sprintf("%d queue entries created, %d failed", r.Created, len(r.Failures))
	default:
		return fmt.Sprintf("%d queue entries created for %d person(s)", r.Created, r.Processed)
	}
}

// SchedulerService is the queue writer: it runs the suggestion engine
// over the whole population and persists one rendered queue entry per
// reachable channel. Runs are operator-triggered, not periodic.
type SchedulerService struct {
	queue   repository.QueueRepository
	dir     repository.DirectoryRepository
	formURL string
	logger  *zap.Logger

	// Metrics hook, called once per queue row written. Optional.
	onCreated func(domain.Channel)
}

func NewSchedulerService(
	queue repository.QueueRepository,
	dir repository.DirectoryRepository,
	formURL string,
	logger *zap.Logger,
	onCreated func(domain.Channel),
) *SchedulerService {
	if formURL == "" {
		formURL = template.DefaultFormURL
	}
	if onCreated == nil {
		onCreated = func(domain.Channel) {}
	}
	return &SchedulerService{queue: queue, dir: dir, formURL: formURL, logger: logger, onCreated: onCreated}
}

// Run processes every person eligible as of today. Insert failures are
// collected per person/channel and never abort the remaining
// population; only a failure to read the directory aborts the run.
//
// Runs are not idempotent: repeating a run within the same lookahead
// window creates duplicate rows. Deduplication is a policy decision
// left to the operator (see DESIGN.md).
func (s *SchedulerService) Run(ctx context.Context, today time.Time) (*RunReport, error) {
	templates, err := s.dir.GetTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	holidayRules, err := s.dir.ListHolidays(ctx)
	if err != nil {
		return nil, fmt.Errorf("load holidays: %w", err)
	}
	holidays := schedule.NewHolidaySet(holidayRules)

	people, err := s.dir.ListPeople(ctx)
	if err != nil {
		return nil, fmt.Errorf("load people: %w", err)
	}

	report := &RunReport{}
	for _, p := range people {
		if p.BirthDate.IsZero() {
			continue
		}

		suggestion := schedule.Suggest(today, p.BirthDate.Month(), p.BirthDate.Day(), holidays)
		if !suggestion.Eligible {
			continue
		}
		report.Processed++

		s.enqueuePerson(ctx, p, suggestion, templates, report)
	}

	s.logger.Info("scheduler run finished",
		zap.Int("processed", report.Processed),
		zap.Int("created", report.Created),
		zap.Int("failed", len(report.Failures)),
	)
	return report, nil
}

func (s *SchedulerService) enqueuePerson(
	ctx context.Context,
	p *domain.Person,
	suggestion schedule.Suggestion,
	templates domain.TemplateConfig,
	report *RunReport,
) {
	supervisorName := "Supervisor"
	var supervisorPhone, supervisorEmail string
	if p.Supervisor != nil {
		if p.Supervisor.Name != "" {
			supervisorName = p.Supervisor.Name
		}
		supervisorPhone = p.Supervisor.Phone
		supervisorEmail = p.Supervisor.Email
	}

	renderCtx := template.Context{
		SupervisorName: supervisorName,
		PersonName:     p.Name,
		Birthday:       template.FormatBirthday(p.BirthDate.Month(), p.BirthDate.Day()),
		DayOff:         template.FormatDayOff(suggestion.Date),
		Rule:           suggestion.Rule,
		Link:           template.ConfirmationLink(s.formURL, p.Name, p.ID, suggestion.Date),
	}

	// Entries are only created for channels with a reachable address.
	if supervisorPhone != "" {
		entry := s.buildEntry(p, suggestion, domain.ChannelChat, supervisorPhone, nil,
			template.Render(templates.ChatBody, renderCtx))
		s.insert(ctx, entry, report)
	}

	if supervisorEmail != "" {
		subject := template.Render(templates.EmailSubject, renderCtx)
		entry := s.buildEntry(p, suggestion, domain.ChannelEmail, supervisorEmail, &subject,
			template.Render(templates.EmailBody, renderCtx))
		s.insert(ctx, entry, report)
	}
}

func (s *SchedulerService) buildEntry(
	p *domain.Person,
	suggestion schedule.Suggestion,
	channel domain.Channel,
	recipient string,
	subject *string,
	body string,
) *domain.QueueEntry {
	now := time.Now().UTC()
	return &domain.QueueEntry{
		ID:            uuid.New().String(),
		Channel:       channel,
		RecipientType: domain.RecipientSupervisor,
		Recipient:     recipient,
		Subject:       subject,
		Body:          body,
		SuggestedDate: suggestion.Date,
		AppliedRule:   suggestion.Rule,
		PersonID:      p.ID,
		PersonName:    p.Name,
		Status:        domain.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// insert persists one entry; a failure is recorded on the report and
// the run carries on with the next person/channel.
func (s *SchedulerService) insert(ctx context.Context, e *domain.QueueEntry, report *RunReport) {
	err := e.Validate()
	if err == nil {
		err = s.queue.Create(ctx, e)
	}
	if err != nil {
		report.Failures = append(report.Failures,
			fmt.Sprintf("%s/%s: %v", e.PersonName, e.Channel, err))
		s.logger.Warn("failed to enqueue notice",
			zap.String("person", e.PersonName),
			zap.String("channel", string(e.Channel)),
			zap.Error(err),
		)
		return
	}
	report.Created++
	s.onCreated(e.Channel)
}
