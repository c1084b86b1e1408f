package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domainoauth "github.com/tamara-re/Pinterest-Ranker-Backend/internal/domain/oauth"
)

const testSecret = "unit-test-signing-secret-padding"

func TestIssueVerifyRoundTrip(t *testing.T) {
	codec := NewCodec(testSecret, time.Hour)

	token, err := codec.Issue("USER#pinterest:12345", "pinterest")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	session, err := codec.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "USER#pinterest:12345", session.SubjectKey)
	require.Equal(t, "pinterest", session.Provider)
	require.False(t, session.IssuedAt.IsZero())
	require.True(t, session.ExpiresAt.After(session.IssuedAt))
}

func TestVerifyExpiredToken(t *testing.T) {
	codec := NewCodec(testSecret, -2*time.Hour)

	token, err := codec.Issue("USER#pinterest:12345", "pinterest")
	require.NoError(t, err)

	_, err = codec.Verify(token)
	require.ErrorIs(t, err, domainoauth.ErrInvalidSession)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewCodec(testSecret, time.Hour)
	verifier := NewCodec("a-different-secret-that-is-long!", time.Hour)

	token, err := issuer.Issue("USER#pinterest:12345", "pinterest")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, domainoauth.ErrInvalidSession)
}

func TestVerifyGarbage(t *testing.T) {
	codec := NewCodec(testSecret, time.Hour)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := codec.Verify(token)
		require.ErrorIs(t, err, domainoauth.ErrInvalidSession, "token %q", token)
	}
}

func TestMissingSecret(t *testing.T) {
	codec := NewCodec("", time.Hour)

	_, err := codec.Issue("USER#pinterest:12345", "pinterest")
	require.ErrorIs(t, err, domainoauth.ErrConfigurationMissing)

	_, err = codec.Verify("anything")
	require.ErrorIs(t, err, domainoauth.ErrConfigurationMissing)
}
