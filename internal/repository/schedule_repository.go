package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/noah-isme/unischedule/internal/domain"
)

// scheduleRow is the sqlx-mapped shape of the schedules table. Result is
// stored as jsonb and marshalled/unmarshalled separately from
// domain.SavedSchedule, using types.JSONText the way other jsonb columns
// in this codebase are mapped.
type scheduleRow struct {
	ID        string         `db:"id"`
	Name      string         `db:"name"`
	Result    types.JSONText `db:"result"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (r scheduleRow) toDomain() (domain.SavedSchedule, error) {
	var result domain.SolveResult
	if err := json.Unmarshal(r.Result, &result); err != nil {
		return domain.SavedSchedule{}, fmt.Errorf("decode saved schedule result: %w", err)
	}
	return domain.SavedSchedule{
		ID:        r.ID,
		Name:      r.Name,
		Result:    result,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

// ScheduleRepository persists named solve results.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository constructs the repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Create inserts a saved schedule, assigning an id and timestamps if unset.
func (r *ScheduleRepository) Create(ctx context.Context, schedule *domain.SavedSchedule) error {
	if schedule == nil {
		return fmt.Errorf("saved schedule payload is nil")
	}
	if schedule.Name == "" {
		return fmt.Errorf("name is required")
	}
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	resultBytes, err := json.Marshal(schedule.Result)
	if err != nil {
		return fmt.Errorf("encode saved schedule result: %w", err)
	}
	now := time.Now().UTC()
	if schedule.CreatedAt.IsZero() {
		schedule.CreatedAt = now
	}
	schedule.UpdatedAt = now

	row := scheduleRow{
		ID:        schedule.ID,
		Name:      schedule.Name,
		Result:    types.JSONText(resultBytes),
		CreatedAt: schedule.CreatedAt,
		UpdatedAt: schedule.UpdatedAt,
	}

	const query = `
INSERT INTO schedules (id, name, result, created_at, updated_at)
VALUES (:id, :name, :result, :created_at, :updated_at)`
	if _, err := sqlx.NamedExecContext(ctx, r.db, query, row); err != nil {
		return fmt.Errorf("insert saved schedule: %w", err)
	}
	return nil
}

// List returns saved schedules ordered by most recently created first.
func (r *ScheduleRepository) List(ctx context.Context) ([]domain.SavedSchedule, error) {
	const query = `SELECT id, name, result, created_at, updated_at FROM schedules ORDER BY created_at DESC`
	var rows []scheduleRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list saved schedules: %w", err)
	}
	schedules := make([]domain.SavedSchedule, 0, len(rows))
	for _, row := range rows {
		s, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, nil
}

// FindByID loads a saved schedule by id.
func (r *ScheduleRepository) FindByID(ctx context.Context, id string) (*domain.SavedSchedule, error) {
	const query = `SELECT id, name, result, created_at, updated_at FROM schedules WHERE id = $1`
	var row scheduleRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	s, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete removes a saved schedule.
func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM schedules WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete saved schedule: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("saved schedule rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
