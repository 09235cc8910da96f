package models

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	user := User{UserID: "u-1", Email: "ama@example.com", Kind: Admin}
	claims := NewJWTClaims(user, "laptop", ScopeRefresh, time.Now().Add(time.Hour))

	token, err := SignJWT(claims, "secret")
	require.NoError(t, err)

	parsed, err := ValidateJWTToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "u-1", parsed.UserID)
	assert.Equal(t, Admin, parsed.Kind)
	assert.Equal(t, "laptop", parsed.DeviceFingerprint)
	assert.Equal(t, ScopeRefresh, parsed.Scope)
	assert.Equal(t, JWT.REFRESH_COOKIE_NAME, parsed.TokenType)

	_, err = ValidateJWTToken(token, "other-secret")
	assert.Error(t, err)
}

func TestJWTExpired(t *testing.T) {
	claims := NewJWTClaims(User{UserID: "u-1"}, "laptop", ScopeAuthentication, time.Now().Add(-time.Minute))
	token, err := SignJWT(claims, "secret")
	require.NoError(t, err)

	_, err = ValidateJWTToken(token, "secret")
	assert.Error(t, err)
}

func TestNewUser(t *testing.T) {
	user, err := NewUser(UserSignupRequest{DisplayName: "Ama", Email: "ama@example.com", Password: "longenough"})
	require.NoError(t, err)

	assert.NotEmpty(t, user.UserID)
	assert.Equal(t, Member, user.Kind)
	assert.NotEqual(t, "longenough", user.HashedPassword)
	assert.True(t, user.CheckPassword("longenough"))
	assert.False(t, user.CheckPassword("longenougH"))
}

func TestNewUserDefaultsDisplayName(t *testing.T) {
	user, err := NewUser(UserSignupRequest{DisplayName: "  ", Email: "ama.owusu@example.com", Password: "longenough"})
	require.NoError(t, err)
	assert.Equal(t, "ama.owusu", user.DisplayName)
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
}

func TestNewAnalysisRecord(t *testing.T) {
	result := AnalysisResult{
		SkinLab:       [3]float64{156, 142, 157},
		SkinHex:       "#C6864F",
		Undertone:     "warm",
		PantoneFamily: "3W1",
		Matches:       map[string][]string{"Nars": {"Barcelona", "Syracuse"}},
	}

	record := NewAnalysisRecord("u-1", result)
	assert.NotEmpty(t, record.AnalysisID)
	assert.False(t, record.CreatedAt.IsZero())

	want := AnalysisRecord{
		UserID:        "u-1",
		SkinLabL:      156,
		SkinLabA:      142,
		SkinLabB:      157,
		Undertone:     "warm",
		PantoneFamily: "3W1",
		Matches:       map[string][]string{"Nars": {"Barcelona", "Syracuse"}},
	}
	record.AnalysisID, record.CreatedAt = "", time.Time{}
	if diff := cmp.Diff(want, record); diff != "" {
		t.Errorf("NewAnalysisRecord() mismatch (-want +got):\n%s", diff)
	}
}
