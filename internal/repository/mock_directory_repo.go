package repository

import (
	"context"

	"github.com/dayoffhub/dayoff-notifier/internal/domain"
)

// MockDirectoryRepository is an in-memory DirectoryRepository for tests.
type MockDirectoryRepository struct {
	People    []*domain.Person
	Holidays  []domain.HolidayRule
	Templates *domain.TemplateConfig

	// Optional error overrides.
	ListPeopleErr   error
	ListHolidaysErr error
	GetTemplatesErr error
}

func NewMockDirectoryRepository() *MockDirectoryRepository {
	return &MockDirectoryRepository{}
}

func (m *MockDirectoryRepository) ListPeople(_ context.Context) ([]*domain.Person, error) {
	if m.ListPeopleErr != nil {
		return nil, m.ListPeopleErr
	}
	return m.People, nil
}

func (m *MockDirectoryRepository) ListHolidays(_ context.Context) ([]domain.HolidayRule, error) {
	if m.ListHolidaysErr != nil {
		return nil, m.ListHolidaysErr
	}
	return m.Holidays, nil
}

func (m *MockDirectoryRepository) GetTemplates(_ context.Context) (domain.TemplateConfig, error) {
	if m.GetTemplatesErr != nil {
		return domain.TemplateConfig{}, m.GetTemplatesErr
	}
	if m.Templates != nil {
		return *m.Templates, nil
	}
	return domain.DefaultTemplates(), nil
}
