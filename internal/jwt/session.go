package jwt

import (
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"

	domainoauth "github.com/tamara-re/Pinterest-Ranker-Backend/internal/domain/oauth"
)

// Session is the verified content of a session token.
type Session struct {
	SubjectKey string
	Provider   string
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

type customClaims struct {
	Provider string `json:"provider,omitempty"`
}

// Codec issues and verifies signed session tokens. Tokens are self-contained
// bearer credentials: nothing is stored server-side.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec creates a session codec from the process-wide signing secret.
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Issue produces a compact HS256 JWS with sub, iat, and exp claims.
func (c *Codec) Issue(subjectKey, provider string) (string, error) {
	if len(c.secret) == 0 {
		return "", domainoauth.ErrConfigurationMissing
	}

	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: c.secret},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return "", err
	}

	now := time.Now()
	std := jwt.Claims{
		Subject:  subjectKey,
		IssuedAt: jwt.NewNumericDate(now),
		Expiry:   jwt.NewNumericDate(now.Add(c.ttl)),
	}
	return jwt.Signed(signer).Claims(std).Claims(customClaims{Provider: provider}).Serialize()
}

// Verify validates signature and expiry. Every failure mode collapses into
// ErrInvalidSession so callers cannot distinguish signature from expiry.
func (c *Codec) Verify(token string) (*Session, error) {
	if len(c.secret) == 0 {
		return nil, domainoauth.ErrConfigurationMissing
	}

	parsed, err := jwt.ParseSigned(token, []jose.SignatureAlgorithm{jose.HS256})
	if err != nil {
		return nil, domainoauth.ErrInvalidSession
	}

	var std jwt.Claims
	var custom customClaims
	if err := parsed.Claims(c.secret, &std, &custom); err != nil {
		return nil, domainoauth.ErrInvalidSession
	}
	if err := std.Validate(jwt.Expected{Time: time.Now()}); err != nil {
		return nil, domainoauth.ErrInvalidSession
	}
	if std.Subject == "" {
		return nil, domainoauth.ErrInvalidSession
	}

	session := &Session{
		SubjectKey: std.Subject,
		Provider:   custom.Provider,
	}
	if std.IssuedAt != nil {
		session.IssuedAt = std.IssuedAt.Time()
	}
	if std.Expiry != nil {
		session.ExpiresAt = std.Expiry.Time()
	}
	return session, nil
}
