package dtr

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
)

// Service governs the per-day attendance transitions: no record, then Active
// after clock-in, then Completed after clock-out. Completed is terminal for
// that day. Every operation re-reads current state; nothing is cached.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a service backed by a repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock overrides the time source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ClockIn creates today's record for the intern. Fails with ErrAlreadyClockedIn
// when a record for today already exists, whether from the pre-check or from
// the store's unique (intern, day) constraint losing an insert race.
func (s *Service) ClockIn(ctx context.Context, internID string) (Record, error) {
	now := s.now()
	day := DayKey(now)

	existing, err := s.repo.GetByInternAndDay(ctx, internID, day)
	if err != nil {
		return Record{}, err
	}
	if existing != nil && !existing.ClockIn.IsZero() {
		return Record{}, ErrAlreadyClockedIn
	}

	rec := Record{
		ID:        uuid.NewString(),
		InternID:  internID,
		Day:       day,
		ClockIn:   now,
		Status:    StatusActive,
		CreatedAt: now,
	}
	if err := s.repo.Insert(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// PeekToday returns today's record if one exists, or nil meaning the intern
// may clock in. Read-only; never creates anything.
func (s *Service) PeekToday(ctx context.Context, internID string) (*Record, error) {
	return s.repo.GetByInternAndDay(ctx, internID, DayKey(s.now()))
}

// ClockOut completes today's record. Fails with ErrNoRecord when there is no
// record for today and ErrAlreadyClockedOut when clock_out is already set.
// Hours are wall-clock, rounded to 2 decimals; a negative duration from clock
// skew is clamped to zero rather than recorded.
func (s *Service) ClockOut(ctx context.Context, internID string) (Record, error) {
	now := s.now()
	day := DayKey(now)

	rec, err := s.repo.GetByInternAndDay(ctx, internID, day)
	if err != nil {
		return Record{}, err
	}
	if rec == nil {
		return Record{}, ErrNoRecord
	}
	if rec.ClockOut != nil {
		return Record{}, ErrAlreadyClockedOut
	}

	hours := now.Sub(rec.ClockIn).Hours()
	if hours < 0 {
		hours = 0
	}
	hours = math.Round(hours*100) / 100

	rec.ClockOut = &now
	rec.TotalWorkHours = &hours
	rec.Status = StatusCompleted
	if err := s.repo.Complete(ctx, internID, day, *rec); err != nil {
		return Record{}, err
	}
	return *rec, nil
}

// History returns all of the intern's records across days. No pagination; a
// single intern's history stays small.
func (s *Service) History(ctx context.Context, internID string) ([]Record, error) {
	return s.repo.ListByIntern(ctx, internID)
}
