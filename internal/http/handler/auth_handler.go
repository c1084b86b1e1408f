package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tamara-re/Pinterest-Ranker-Backend/internal/config"
	"github.com/tamara-re/Pinterest-Ranker-Backend/internal/cookie"
	domainoauth "github.com/tamara-re/Pinterest-Ranker-Backend/internal/domain/oauth"
	authsvc "github.com/tamara-re/Pinterest-Ranker-Backend/internal/service/auth"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "pr_session"

// AuthHandler maps the login endpoints onto the login service.
type AuthHandler struct {
	Login authsvc.LoginService
	Cfg   config.Config
}

// NewAuthHandler creates the handler set.
func NewAuthHandler(login authsvc.LoginService, cfg config.Config) *AuthHandler {
	return &AuthHandler{Login: login, Cfg: cfg}
}

// Start redirects the browser to the provider authorization URL.
func (h *AuthHandler) Start(c *gin.Context) {
	redirectURL, err := h.Login.BeginAuthorization(c.Request.Context(), c.Query("returnTo"))
	if err != nil {
		h.respondLoginError(c, err)
		return
	}
	c.Redirect(http.StatusFound, redirectURL)
}

// Callback completes the authorization, sets the session cookie, and
// redirects back into the application.
func (h *AuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "code and state are required."})
		return
	}

	login, err := h.Login.CompleteAuthorization(c.Request.Context(), code, state)
	if err != nil {
		h.respondLoginError(c, err)
		return
	}

	maxAge := int(h.Cfg.SessionTTL.Seconds())
	c.Writer.Header().Add("Set-Cookie", cookie.Serialize(SessionCookieName, login.SessionToken, cookie.Attributes{
		Domain:        h.Cfg.CookieDomain,
		MaxAgeSeconds: &maxAge,
	}))
	c.Redirect(http.StatusFound, h.Cfg.AppOrigin+login.ReturnTo)
}

// Me reports the session status. Invalid or absent sessions degrade to an
// unauthenticated 200 response rather than an error.
func (h *AuthHandler) Me(c *gin.Context) {
	token := cookie.Parse(c.GetHeader("Cookie"))[SessionCookieName]
	if token == "" {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	user, err := h.Login.CheckSession(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, domainoauth.ErrConfigurationMissing) {
			h.respondLoginError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user": gin.H{
			"id":             user.SubjectKey,
			"provider":       user.Provider,
			"providerUserId": user.ProviderUserID,
		},
	})
}

// Logout expires the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	maxAge := 0
	c.Writer.Header().Add("Set-Cookie", cookie.Serialize(SessionCookieName, "", cookie.Attributes{
		Domain:        h.Cfg.CookieDomain,
		MaxAgeSeconds: &maxAge,
	}))
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Health answers liveness probes.
func (h *AuthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *AuthHandler) respondLoginError(c *gin.Context, err error) {
	logger := zap.L()
	switch {
	case errors.Is(err, domainoauth.ErrConfigurationMissing):
		logger.Error("login misconfigured", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "error_description": "Service is not configured."})
	case errors.Is(err, domainoauth.ErrInvalidState):
		logger.Warn("invalid oauth state", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_state", "error_description": "Invalid or expired state."})
	case errors.Is(err, domainoauth.ErrTokenExchangeFailed):
		logger.Warn("token exchange failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "error_description": "Token exchange with the provider failed."})
	case errors.Is(err, domainoauth.ErrIdentityFetchFailed):
		logger.Warn("identity fetch failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "error_description": "Could not fetch the provider identity."})
	case errors.Is(err, domainoauth.ErrIdentityMissing):
		logger.Warn("identity missing user id", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "error_description": "Could not determine the provider user id."})
	default:
		logger.Error("login failure", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "error_description": "Internal server error."})
	}
}
