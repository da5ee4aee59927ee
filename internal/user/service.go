package user

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"dtr/internal/auth"
	"dtr/internal/dtr"
)

// RecordSource is the slice of the attendance store the admin flow joins
// against, keyed by the intern's email.
type RecordSource interface {
	ListByIntern(ctx context.Context, internID string) ([]dtr.Record, error)
	ActiveOnDay(ctx context.Context, internID, day string) ([]dtr.Record, error)
}

// TokenConfig holds the signing parameters for issued bearer tokens.
type TokenConfig struct {
	Issuer     string
	SigningKey string
	TTL        time.Duration
}

// Session is the result of a successful login.
type Session struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	Approval string `json:"approval"`
}

// InternWithRecords pairs an intern profile with their attendance history.
type InternWithRecords struct {
	User
	Records []dtr.Record `json:"records"`
}

// Service implements registration, login, profile lookup and the admin flows.
type Service struct {
	users      Repository
	records    RecordSource
	tokens     TokenConfig
	bcryptCost int
	now        func() time.Time
}

// NewService creates the user service.
func NewService(users Repository, records RecordSource, tokens TokenConfig, bcryptCost int) *Service {
	return &Service{
		users:      users,
		records:    records,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Register creates a user with a Pending approval status and returns the new
// id. A duplicate email fails with ErrEmailTaken and never overwrites the
// existing record, whether caught by the pre-check or by the store's unique
// index on a concurrent insert.
func (s *Service) Register(ctx context.Context, name, surname, email, role, password string) (string, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%w: malformed email", ErrInvalidInput)
	}
	if !ValidRole(role) {
		return "", fmt.Errorf("%w: role must be %q or %q", ErrInvalidInput, RoleIntern, RoleAdmin)
	}
	if password == "" {
		return "", fmt.Errorf("%w: password required", ErrInvalidInput)
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrEmailTaken
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return "", err
	}

	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		Surname:      surname,
		Role:         role,
		PasswordHash: hash,
		Approval:     ApprovalPending,
		CreatedAt:    s.now(),
	}
	if err := s.users.Insert(ctx, u); err != nil {
		return "", err
	}
	return u.ID, nil
}

// Login verifies credentials and issues a bearer token keyed on the email.
// Unknown email and wrong password both return ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return Session{}, err
	}
	if u == nil || !auth.VerifyPassword(password, u.PasswordHash) {
		return Session{}, ErrInvalidCredentials
	}

	tok, err := auth.Issue(u.Email, u.Role, s.tokens.Issuer, s.tokens.SigningKey, s.tokens.TTL)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: tok.Value, Role: u.Role, Approval: u.Approval}, nil
}

// Profile returns the user for a verified token subject. The identity may have
// been removed out-of-band since the token was issued, hence ErrNotFound.
func (s *Service) Profile(ctx context.Context, email string) (User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return User{}, err
	}
	if u == nil {
		return User{}, ErrNotFound
	}
	return *u, nil
}

// UpdateApproval overwrites the approval field for an intern. The value is
// free-form; only an empty string is rejected.
func (s *Service) UpdateApproval(ctx context.Context, email, approval string) error {
	if approval == "" {
		return fmt.Errorf("%w: approval required", ErrInvalidInput)
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrNotFound
	}
	return s.users.UpdateApproval(ctx, email, approval)
}

// ListInternsWithRecords returns every intern with their full attendance
// history attached. One record fetch per intern; fine at this fleet size.
func (s *Service) ListInternsWithRecords(ctx context.Context) ([]InternWithRecords, error) {
	interns, err := s.users.ListByRole(ctx, RoleIntern)
	if err != nil {
		return nil, err
	}

	out := make([]InternWithRecords, 0, len(interns))
	for _, intern := range interns {
		recs, err := s.records.ListByIntern(ctx, intern.Email)
		if err != nil {
			return nil, err
		}
		if recs == nil {
			recs = []dtr.Record{}
		}
		out = append(out, InternWithRecords{User: intern, Records: recs})
	}
	return out, nil
}

// ListActiveToday returns only interns holding an Active record dated today.
// Interns with no record, or a Completed one, are excluded entirely.
func (s *Service) ListActiveToday(ctx context.Context) ([]InternWithRecords, error) {
	interns, err := s.users.ListByRole(ctx, RoleIntern)
	if err != nil {
		return nil, err
	}

	day := dtr.DayKey(s.now())
	out := make([]InternWithRecords, 0, len(interns))
	for _, intern := range interns {
		recs, err := s.records.ActiveOnDay(ctx, intern.Email, day)
		if err != nil {
			return nil, err
		}
		if len(recs) == 0 {
			continue
		}
		out = append(out, InternWithRecords{User: intern, Records: recs})
	}
	return out, nil
}
