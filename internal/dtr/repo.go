package dtr

import (
	"context"
	"database/sql"
	"errors"

	"dtr/internal/store"
)

// Repository is the persistence contract for attendance records. Implementations
// must enforce uniqueness of (intern_id, day) on Insert; that constraint, not
// application locking, resolves concurrent clock-in attempts.
type Repository interface {
	GetByInternAndDay(ctx context.Context, internID, day string) (*Record, error)
	Insert(ctx context.Context, rec Record) error
	Complete(ctx context.Context, internID, day string, rec Record) error
	ListByIntern(ctx context.Context, internID string) ([]Record, error)
	ActiveOnDay(ctx context.Context, internID, day string) ([]Record, error)
}

// PostgresRepository persists attendance records in Postgres.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a repo.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const recordColumns = `id, intern_id, day, clock_in, clock_out, status, total_work_hours, created_at`

// GetByInternAndDay returns the record for (intern, day), or nil when absent.
func (r *PostgresRepository) GetByInternAndDay(ctx context.Context, internID, day string) (*Record, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM attendance_records
		WHERE intern_id = $1 AND day = $2
	`, internID, day)
	var rec Record
	if err := scanRecord(row, &rec); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// Insert writes a new record. A duplicate (intern, day) surfaces as ErrAlreadyClockedIn.
func (r *PostgresRepository) Insert(ctx context.Context, rec Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO attendance_records (id, intern_id, day, clock_in, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, rec.ID, rec.InternID, rec.Day, rec.ClockIn, rec.Status, rec.CreatedAt)
	if store.IsUniqueViolation(err) {
		return ErrAlreadyClockedIn
	}
	return err
}

// Complete sets clock_out, total hours and status exactly once.
func (r *PostgresRepository) Complete(ctx context.Context, internID, day string, rec Record) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE attendance_records
		SET clock_out = $3, total_work_hours = $4, status = $5
		WHERE intern_id = $1 AND day = $2 AND clock_out IS NULL
	`, internID, day, rec.ClockOut, rec.TotalWorkHours, rec.Status)
	return err
}

// ListByIntern returns all records for the intern, newest day first.
func (r *PostgresRepository) ListByIntern(ctx context.Context, internID string) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM attendance_records
		WHERE intern_id = $1
		ORDER BY day DESC
	`, internID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

// ActiveOnDay returns records for the intern on a day that are still Active.
func (r *PostgresRepository) ActiveOnDay(ctx context.Context, internID, day string) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM attendance_records
		WHERE intern_id = $1 AND day = $2 AND status = $3
	`, internID, day, StatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner, rec *Record) error {
	return row.Scan(&rec.ID, &rec.InternID, &rec.Day, &rec.ClockIn, &rec.ClockOut,
		&rec.Status, &rec.TotalWorkHours, &rec.CreatedAt)
}

func collectRecords(rows *sql.Rows) ([]Record, error) {
	var res []Record
	for rows.Next() {
		var rec Record
		if err := scanRecord(rows, &rec); err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}
