package dtr

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository is a mutex-guarded in-memory Repository. It enforces the
// same (intern, day) uniqueness as the Postgres schema, so service tests
// exercise the real conflict paths, including the concurrent insert race.
type MemoryRepository struct {
	mu      sync.Mutex
	records map[string]Record
}

// NewMemoryRepository creates an empty in-memory repo.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]Record)}
}

func recordKey(internID, day string) string {
	return internID + "|" + day
}

// GetByInternAndDay returns the record for (intern, day), or nil when absent.
func (r *MemoryRepository) GetByInternAndDay(_ context.Context, internID, day string) (*Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[recordKey(internID, day)]
	if !ok {
		return nil, nil
	}
	cp := rec
	return &cp, nil
}

// Insert writes a new record; a duplicate (intern, day) fails with ErrAlreadyClockedIn.
func (r *MemoryRepository) Insert(_ context.Context, rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := recordKey(rec.InternID, rec.Day)
	if _, ok := r.records[key]; ok {
		return ErrAlreadyClockedIn
	}
	r.records[key] = rec
	return nil
}

// Complete sets clock_out fields once; a second call is a no-op, as with the
// guarded UPDATE in Postgres.
func (r *MemoryRepository) Complete(_ context.Context, internID, day string, rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := recordKey(internID, day)
	existing, ok := r.records[key]
	if !ok || existing.ClockOut != nil {
		return nil
	}
	existing.ClockOut = rec.ClockOut
	existing.TotalWorkHours = rec.TotalWorkHours
	existing.Status = rec.Status
	r.records[key] = existing
	return nil
}

// ListByIntern returns all records for the intern, newest day first.
func (r *MemoryRepository) ListByIntern(_ context.Context, internID string) ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []Record
	for _, rec := range r.records {
		if rec.InternID == internID {
			res = append(res, rec)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Day > res[j].Day })
	return res, nil
}

// ActiveOnDay returns the intern's still-Active records for a day.
func (r *MemoryRepository) ActiveOnDay(_ context.Context, internID, day string) ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []Record
	for _, rec := range r.records {
		if rec.InternID == internID && rec.Day == day && rec.Status == StatusActive {
			res = append(res, rec)
		}
	}
	return res, nil
}
