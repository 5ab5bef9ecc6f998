package repository

import (
	"context"

	"github.com/dayoffhub/dayoff-notifier/internal/domain"
)

// DirectoryRepository reads the externally-owned record store: people,
// their supervisors, holiday rules, and template configuration. The
// core never writes these tables.
type DirectoryRepository interface {
	// ListPeople returns every person with their supervisor joined in.
	ListPeople(ctx context.Context) ([]*domain.Person, error)

	ListHolidays(ctx context.Context) ([]domain.HolidayRule, error)

	// GetTemplates reads the template config keys and applies the
	// built-in defaults for any absent value.
	GetTemplates(ctx context.Context) (domain.TemplateConfig, error)
}
