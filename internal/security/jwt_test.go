package security_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Gulrukh07/BeautyShopBooking/internal/security"
)

func TestIssueAndParseRoundtrip(t *testing.T) {
	m := security.NewJWTManager("test-secret", time.Minute, time.Hour)
	id := uuid.New()

	tokens, err := m.Issue("client", id)
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)
	require.Equal(t, int64(60), tokens.ExpiresIn)

	uid, role, err := m.ParseAccess(tokens.AccessToken)
	require.NoError(t, err)
	require.Equal(t, id, uid)
	require.Equal(t, "client", role)

	claims, err := m.ParseRefresh(tokens.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, id.String(), claims.UserID)
	require.NotEmpty(t, claims.JTI)
}

func TestParseAccessRejectsWrongKey(t *testing.T) {
	issuer := security.NewJWTManager("secret-a", time.Minute, time.Hour)
	verifier := security.NewJWTManager("secret-b", time.Minute, time.Hour)

	tokens, err := issuer.Issue("admin", uuid.New())
	require.NoError(t, err)

	_, _, err = verifier.ParseAccess(tokens.AccessToken)
	require.Error(t, err)
}

func TestParseAccessRejectsExpired(t *testing.T) {
	m := security.NewJWTManager("test-secret", -time.Minute, time.Hour)
	tokens, err := m.Issue("client", uuid.New())
	require.NoError(t, err)

	_, _, err = m.ParseAccess(tokens.AccessToken)
	require.Error(t, err)
}
