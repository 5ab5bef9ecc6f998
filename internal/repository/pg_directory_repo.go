package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dayoffhub/dayoff-notifier/internal/domain"
)

type pgDirectoryRepository struct {
	pool *pgxpool.Pool
}

// NewPgDirectoryRepository returns a DirectoryRepository backed by PostgreSQL.
func NewPgDirectoryRepository(pool *pgxpool.Pool) DirectoryRepository {
	return &pgDirectoryRepository{pool: pool}
}

func (r *pgDirectoryRepository) ListPeople(ctx context.Context) ([]*domain.Person, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.name, p.birth_date, p.phone, p.email, p.company,
		       s.id, s.name, s.phone, s.email
		FROM people p
		LEFT JOIN supervisors s ON s.id = p.supervisor_id
		ORDER BY p.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	defer rows.Close()

	var people []*domain.Person
	for rows.Next() {
		var p domain.Person
		var supID, supName, supPhone, supEmail *string
		if err := rows.Scan(
			&p.ID, &p.Name, &p.BirthDate, &p.Phone, &p.Email, &p.Company,
			&supID, &supName, &supPhone, &supEmail,
		); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		if supID != nil {
			p.Supervisor = &domain.Supervisor{ID: *supID}
			if supName != nil {
				p.Supervisor.Name = *supName
			}
			if supPhone != nil {
				p.Supervisor.Phone = *supPhone
			}
			if supEmail != nil {
				p.Supervisor.Email = *supEmail
			}
		}
		people = append(people, &p)
	}
	return people, rows.Err()
}

func (r *pgDirectoryRepository) ListHolidays(ctx context.Context) ([]domain.HolidayRule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, day, month, description FROM holiday_rules`)
	if err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []domain.HolidayRule
	for rows.Next() {
		var h domain.HolidayRule
		if err := rows.Scan(&h.ID, &h.Day, &h.Month, &h.Description); err != nil {
			return nil, fmt.Errorf("scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

func (r *pgDirectoryRepository) GetTemplates(ctx context.Context) (domain.TemplateConfig, error) {
	rows, err := r.pool.Query(ctx, `SELECT key, value FROM app_config`)
	if err != nil {
		return domain.TemplateConfig{}, fmt.Errorf("load app config: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return domain.TemplateConfig{}, fmt.Errorf("scan app config: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return domain.TemplateConfig{}, err
	}
	return domain.FromConfig(values), nil
}
