package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dtr/internal/auth"
	"dtr/internal/dtr"
)

const testKey = "test-signing-key"

func newTestService(records RecordSource) *Service {
	if records == nil {
		records = dtr.NewMemoryRepository()
	}
	return NewService(NewMemoryRepository(), records, TokenConfig{
		Issuer:     "dtr-test",
		SigningKey: testKey,
		TTL:        time.Hour,
	}, 4) // min bcrypt cost keeps tests fast
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		email   string
		role    string
		pass    string
		wantErr error
	}{
		{name: "valid intern", email: "jane@example.com", role: RoleIntern, pass: "secret"},
		{name: "valid admin", email: "boss@example.com", role: RoleAdmin, pass: "secret"},
		{name: "malformed email", email: "not-an-email", role: RoleIntern, pass: "secret", wantErr: ErrInvalidInput},
		{name: "unknown role", email: "jane@example.com", role: "Manager", pass: "secret", wantErr: ErrInvalidInput},
		{name: "empty password", email: "jane@example.com", role: RoleIntern, pass: "", wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(nil)
			id, err := svc.Register(ctx, "Jane", "Doe", tt.email, tt.role, tt.pass)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, id)

			u, err := svc.Profile(ctx, tt.email)
			require.NoError(t, err)
			assert.Equal(t, ApprovalPending, u.Approval)
			assert.NotEqual(t, tt.pass, u.PasswordHash, "password must be stored hashed")
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(nil)

	_, err := svc.Register(ctx, "Jane", "Doe", "jane@example.com", RoleIntern, "first-password")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Impostor", "Doe", "jane@example.com", RoleIntern, "other-password")
	assert.ErrorIs(t, err, ErrEmailTaken)

	// Original record untouched: original credentials still log in
	_, err = svc.Login(ctx, "jane@example.com", "first-password")
	assert.NoError(t, err)
	_, err = svc.Login(ctx, "jane@example.com", "other-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(nil)

	_, err := svc.Register(ctx, "Jane", "Doe", "jane@example.com", RoleIntern, "secret")
	require.NoError(t, err)

	t.Run("valid credentials issue a verifiable token", func(t *testing.T) {
		session, err := svc.Login(ctx, "jane@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, RoleIntern, session.Role)
		assert.Equal(t, ApprovalPending, session.Approval)

		claims, err := auth.Parse(session.Token, testKey, "dtr-test")
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", claims.Subject)
		assert.Equal(t, RoleIntern, claims.Role)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, errWrongPass := svc.Login(ctx, "jane@example.com", "nope")
		_, errNoUser := svc.Login(ctx, "ghost@example.com", "secret")
		assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
		assert.ErrorIs(t, errNoUser, ErrInvalidCredentials)
		assert.Equal(t, errWrongPass.Error(), errNoUser.Error())
	})
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(nil)

	_, err := svc.Profile(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Register(ctx, "Jane", "Doe", "jane@example.com", RoleIntern, "secret")
	require.NoError(t, err)

	u, err := svc.Profile(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Jane", u.Name)
	assert.Equal(t, "Doe", u.Surname)
}

func TestUpdateApproval(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(nil)

	_, err := svc.Register(ctx, "Jane", "Doe", "jane@example.com", RoleIntern, "secret")
	require.NoError(t, err)

	err = svc.UpdateApproval(ctx, "ghost@example.com", "Approved")
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.UpdateApproval(ctx, "jane@example.com", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Any non-empty value is accepted, not just Pending/Approved
	err = svc.UpdateApproval(ctx, "jane@example.com", "Rejected")
	require.NoError(t, err)

	u, err := svc.Profile(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Rejected", u.Approval)
}

func TestListInternsWithRecords(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 3, 9, 9, 0, 0, 0, time.Local)

	records := dtr.NewMemoryRepository()
	attendance := dtr.NewService(records).WithClock(func() time.Time { return day })
	svc := newTestService(records)

	for _, email := range []string{"a@example.com", "b@example.com"} {
		_, err := svc.Register(ctx, "Intern", "One", email, RoleIntern, "secret")
		require.NoError(t, err)
	}
	_, err := svc.Register(ctx, "Boss", "Admin", "boss@example.com", RoleAdmin, "secret")
	require.NoError(t, err)

	_, err = attendance.ClockIn(ctx, "a@example.com")
	require.NoError(t, err)

	interns, err := svc.ListInternsWithRecords(ctx)
	require.NoError(t, err)
	require.Len(t, interns, 2, "admins are not listed")

	assert.Equal(t, "a@example.com", interns[0].Email)
	assert.Len(t, interns[0].Records, 1)
	assert.Equal(t, "b@example.com", interns[1].Email)
	assert.Empty(t, interns[1].Records, "interns without records are still listed")
}

func TestListActiveToday(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 3, 9, 9, 0, 0, 0, time.Local)
	clock := func() time.Time { return day }

	records := dtr.NewMemoryRepository()
	attendance := dtr.NewService(records).WithClock(clock)
	svc := newTestService(records).WithClock(clock)

	for _, email := range []string{"active@example.com", "done@example.com", "absent@example.com"} {
		_, err := svc.Register(ctx, "Intern", "One", email, RoleIntern, "secret")
		require.NoError(t, err)
	}

	_, err := attendance.ClockIn(ctx, "active@example.com")
	require.NoError(t, err)

	_, err = attendance.ClockIn(ctx, "done@example.com")
	require.NoError(t, err)
	_, err = attendance.ClockOut(ctx, "done@example.com")
	require.NoError(t, err)

	active, err := svc.ListActiveToday(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1, "completed and absent interns are excluded entirely")
	assert.Equal(t, "active@example.com", active[0].Email)
	require.Len(t, active[0].Records, 1)
	assert.Equal(t, dtr.StatusActive, active[0].Records[0].Status)
}
