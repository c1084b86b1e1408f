package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	oauthadapter "github.com/tamara-re/Pinterest-Ranker-Backend/internal/adapter/oauth"
	"github.com/tamara-re/Pinterest-Ranker-Backend/internal/config"
	"github.com/tamara-re/Pinterest-Ranker-Backend/internal/domain"
	domainoauth "github.com/tamara-re/Pinterest-Ranker-Backend/internal/domain/oauth"
	"github.com/tamara-re/Pinterest-Ranker-Backend/internal/jwt"
	"github.com/tamara-re/Pinterest-Ranker-Backend/internal/repository"
)

const (
	providerName = "pinterest"

	// stateBytes gives 256 bits of entropy, 43 chars base64url encoded.
	stateBytes = 32

	authorizeScope = "user_accounts:read"
)

// Login is the outcome of a completed authorization.
type Login struct {
	SubjectKey   string
	Provider     string
	ReturnTo     string
	SessionToken string
}

// LoginService drives the login-with-Pinterest flow and session checks.
type LoginService interface {
	// BeginAuthorization creates a one-time CSRF state bound to returnTo and
	// returns the provider authorization URL to redirect the browser to.
	BeginAuthorization(ctx context.Context, requestedReturnTo string) (string, error)

	// CompleteAuthorization validates state, exchanges the code, resolves the
	// provider identity, upserts the user record, and issues a session token.
	// Every failure is terminal for the request: the state is already
	// consumed, so retries must restart from BeginAuthorization.
	CompleteAuthorization(ctx context.Context, code, state string) (*Login, error)

	// CheckSession verifies a session token and loads the backing record.
	CheckSession(ctx context.Context, token string) (domain.User, error)
}

type loginService struct {
	cfg      config.Config
	states   repository.StateStore
	provider oauthadapter.ProviderClient
	users    repository.UserDirectory
	sessions *jwt.Codec
	logger   *zap.Logger
}

// NewLoginService wires the login service implementation.
func NewLoginService(
	cfg config.Config,
	states repository.StateStore,
	provider oauthadapter.ProviderClient,
	users repository.UserDirectory,
	sessions *jwt.Codec,
	logger *zap.Logger,
) LoginService {
	return &loginService{
		cfg:      cfg,
		states:   states,
		provider: provider,
		users:    users,
		sessions: sessions,
		logger:   logger,
	}
}

func (s *loginService) BeginAuthorization(ctx context.Context, requestedReturnTo string) (string, error) {
	if !s.cfg.OAuthReady() {
		return "", domainoauth.ErrConfigurationMissing
	}

	returnTo := normalizeReturnTo(requestedReturnTo)

	state, err := secureRandomString(stateBytes)
	if err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}

	now := time.Now()
	if err := s.states.Save(ctx, domainoauth.AuthState{
		State:     state,
		ReturnTo:  returnTo,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.StateTTL),
	}); err != nil {
		return "", fmt.Errorf("persist state: %w", err)
	}

	authURL, err := url.Parse(s.cfg.PinterestAuthorizeURL)
	if err != nil {
		return "", fmt.Errorf("parse authorize url: %w", err)
	}

	params := authURL.Query()
	params.Set("response_type", "code")
	params.Set("client_id", s.cfg.PinterestClientID)
	params.Set("redirect_uri", s.cfg.PinterestRedirectURI)
	params.Set("scope", authorizeScope)
	params.Set("state", state)
	authURL.RawQuery = params.Encode()

	return authURL.String(), nil
}

func (s *loginService) CompleteAuthorization(ctx context.Context, code, state string) (*Login, error) {
	if !s.cfg.OAuthReady() || !s.cfg.SessionReady() {
		return nil, domainoauth.ErrConfigurationMissing
	}

	// State must be validated and invalidated before any network call.
	record, err := s.states.Consume(ctx, state)
	if err != nil {
		return nil, err
	}

	token, err := s.provider.ExchangeCode(ctx, code)
	if err != nil {
		s.log().Warn("token exchange failed", zap.Error(err))
		return nil, err
	}

	identity, err := s.provider.FetchIdentity(ctx, token.AccessToken)
	if err != nil {
		s.log().Warn("identity fetch failed", zap.Error(err))
		return nil, err
	}

	providerUserID := identity.UserID()
	if providerUserID == "" {
		return nil, domainoauth.ErrIdentityMissing
	}

	now := time.Now()
	var tokenExpiry *time.Time
	if token.ExpiresIn > 0 {
		t := now.Add(time.Duration(token.ExpiresIn) * time.Second)
		tokenExpiry = &t
	}

	user := domain.User{
		SubjectKey:             domain.NewSubjectKey(providerName, providerUserID),
		Provider:               providerName,
		ProviderUserID:         providerUserID,
		ProviderAccessToken:    token.AccessToken,
		ProviderTokenExpiresAt: tokenExpiry,
		UpdatedAt:              now,
	}
	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	sessionToken, err := s.sessions.Issue(user.SubjectKey, providerName)
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}

	s.log().Info("login completed",
		zap.String("subject_key", user.SubjectKey),
		zap.String("provider", providerName),
	)

	return &Login{
		SubjectKey:   user.SubjectKey,
		Provider:     providerName,
		ReturnTo:     record.ReturnTo,
		SessionToken: sessionToken,
	}, nil
}

func (s *loginService) CheckSession(ctx context.Context, token string) (domain.User, error) {
	session, err := s.sessions.Verify(token)
	if err != nil {
		return domain.User{}, err
	}

	user, err := s.users.Get(ctx, session.SubjectKey)
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (s *loginService) log() *zap.Logger {
	if s != nil && s.logger != nil {
		return s.logger
	}
	return zap.L()
}

// normalizeReturnTo restricts the post-login redirect to same-origin relative
// paths. Absolute and protocol-relative URLs fall back to "/" to prevent open
// redirects.
func normalizeReturnTo(returnTo string) string {
	if !strings.HasPrefix(returnTo, "/") || strings.HasPrefix(returnTo, "//") {
		return "/"
	}
	return returnTo
}

func secureRandomString(size int) (string, error) {
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
