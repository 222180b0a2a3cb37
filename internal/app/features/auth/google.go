package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	sysauth "github.com/gashatech/adminhub/internal/app/system/auth"
	"github.com/gashatech/adminhub/internal/app/system/envelope"
	"github.com/gashatech/adminhub/internal/app/system/limits"
	"github.com/gashatech/adminhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type googleRequest struct {
	Code        string `json:"code"`
	RedirectURI string `json:"redirect_uri"`
}

// googleUserInfo represents user info returned from Google.
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
}

// IsConfigured returns true if Google sign-in is configured.
func (h *Handler) IsConfigured() bool {
	return h.googleClientID != "" && h.googleClientSecret != ""
}

// oauth2Config returns the Google OAuth2 configuration. The redirect URI
// comes from the console, which performed the authorization leg itself.
func (h *Handler) oauth2Config(redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.googleClientID,
		ClientSecret: h.googleClientSecret,
		RedirectURL:  redirectURI,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// HandleGoogle handles POST /api/auth/google.
//
// The console sends the authorization code it received from Google; we
// exchange it, resolve the Google account's email to an existing
// AdminHub user, and issue a session. Accounts are never auto-created
// from Google sign-in: an operator must already exist.
func (h *Handler) HandleGoogle(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		envelope.Fail(w, http.StatusServiceUnavailable, "Google sign-in is not configured")
		return
	}

	var req googleRequest
	if !envelope.Decode(w, r, limits.MaxJSONBodySize, &req) {
		return
	}
	if req.Code == "" {
		envelope.Fail(w, http.StatusBadRequest, "authorization code is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	token, err := h.oauth2Config(req.RedirectURI).Exchange(ctx, req.Code)
	if err != nil {
		h.Log.Warn("google sign-in: code exchange failed", zap.Error(err))
		envelope.Fail(w, http.StatusUnauthorized, "Google sign-in failed")
		return
	}

	info, err := fetchGoogleUserInfo(ctx, token)
	if err != nil {
		h.Log.Warn("google sign-in: userinfo fetch failed", zap.Error(err))
		envelope.Fail(w, http.StatusUnauthorized, "Google sign-in failed")
		return
	}
	if !info.EmailVerified {
		sysauth.LogAuthFailure(h.Log, info.Email, "google email not verified")
		envelope.Fail(w, http.StatusUnauthorized, "Google account email is not verified")
		return
	}

	user, err := h.Users.GetByEmail(ctx, info.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			sysauth.LogAuthFailure(h.Log, info.Email, "no account for google email")
			envelope.Fail(w, http.StatusUnauthorized, "no account exists for this Google email")
			return
		}
		h.Log.Error("google sign-in: user lookup failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "sign-in failed")
		return
	}

	h.issueSession(w, user)
}

// fetchGoogleUserInfo retrieves user information from Google's userinfo endpoint.
func fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	return &info, nil
}
