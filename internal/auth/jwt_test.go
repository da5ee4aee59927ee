package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKey    = "unit-test-signing-key"
	testIssuer = "dtr-test"
)

func TestIssueAndParse(t *testing.T) {
	tok, err := Issue("jane@example.com", "Intern", testIssuer, testKey, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, tok.Value)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.ExpiresAt, 5*time.Second)

	claims, err := Parse(tok.Value, testKey, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", claims.Subject)
	assert.Equal(t, "Intern", claims.Role)
}

func TestParseRejects(t *testing.T) {
	valid, err := Issue("jane@example.com", "Intern", testIssuer, testKey, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		key    string
		issuer string
	}{
		{name: "tampered signature", token: valid.Value + "x", key: testKey, issuer: testIssuer},
		{name: "wrong key", token: valid.Value, key: "other-key", issuer: testIssuer},
		{name: "malformed token", token: "not.a.jwt", key: testKey, issuer: testIssuer},
		{name: "issuer mismatch", token: valid.Value, key: testKey, issuer: "someone-else"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.token, tt.key, tt.issuer)
			assert.Error(t, err)
		})
	}
}

func TestParseRejectsExpired(t *testing.T) {
	tok, err := Issue("jane@example.com", "Intern", testIssuer, testKey, -time.Minute)
	require.NoError(t, err)

	_, err = Parse(tok.Value, testKey, testIssuer)
	assert.Error(t, err)
}
