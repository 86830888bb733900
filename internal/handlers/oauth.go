package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/microsoft"

	"github.com/skillsync-hq/skillsync-backend/internal/config"
	"github.com/skillsync-hq/skillsync-backend/internal/models"
	"github.com/skillsync-hq/skillsync-backend/internal/repository"
	"github.com/skillsync-hq/skillsync-backend/internal/services"
	"github.com/skillsync-hq/skillsync-backend/pkg/utils"
)

// federatedProfile is the provider-independent shape of an external identity.
type federatedProfile struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
}

type oauthProvider struct {
	config      *oauth2.Config
	userInfoURL string
	parse       func([]byte) (*federatedProfile, error)
}

// OAuthHandler runs the federated login flows. External identities land in
// the student namespace, matching the platform's social login surface.
type OAuthHandler struct {
	students  repository.StudentStore
	tokens    *services.TokenService
	states    *services.OAuthStateStore
	clientURL string
	providers map[string]*oauthProvider
}

func NewOAuthHandler(cfg *config.Config, students repository.StudentStore, tokens *services.TokenService, states *services.OAuthStateStore) *OAuthHandler {
	return &OAuthHandler{
		students:  students,
		tokens:    tokens,
		states:    states,
		clientURL: cfg.ClientURL,
		providers: map[string]*oauthProvider{
			"google": {
				config: &oauth2.Config{
					ClientID:     cfg.GoogleClientID,
					ClientSecret: cfg.GoogleClientSecret,
					RedirectURL:  cfg.BaseURL + "/api/auth/google/callback",
					Scopes:       []string{"openid", "email", "profile"},
					Endpoint:     google.Endpoint,
				},
				userInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
				parse:       parseGoogleProfile,
			},
			"microsoft": {
				config: &oauth2.Config{
					ClientID:     cfg.MicrosoftClientID,
					ClientSecret: cfg.MicrosoftClientSecret,
					RedirectURL:  cfg.BaseURL + "/api/auth/microsoft/callback",
					Scopes:       []string{"openid", "email", "profile", "User.Read"},
					Endpoint:     microsoft.AzureADEndpoint("common"),
				},
				userInfoURL: "https://graph.microsoft.com/v1.0/me",
				parse:       parseMicrosoftProfile,
			},
		},
	}
}

// Begin redirects the user agent to the provider's consent screen. The state
// parameter is stored server-side with a short TTL and consumed exactly once
// on callback.
func (h *OAuthHandler) Begin(provider string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := h.providers[provider]
		if !ok {
			respondError(w, http.StatusNotFound, "Unknown provider")
			return
		}
		state, err := h.states.Create(r.Context(), provider)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to start login")
			return
		}
		http.Redirect(w, r, p.config.AuthCodeURL(state), http.StatusTemporaryRedirect)
	}
}

// Callback finishes the provider flow: validate state, exchange the code,
// fetch the profile, resolve it to a principal, and hand out a session.
func (h *OAuthHandler) Callback(provider string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := h.providers[provider]
		if !ok {
			respondError(w, http.StatusNotFound, "Unknown provider")
			return
		}

		query := r.URL.Query()
		if errCode := query.Get("error"); errCode != "" {
			h.redirectLoginError(w, r, provider+"_auth_failed")
			return
		}

		state, err := h.states.Consume(r.Context(), query.Get("state"))
		if err != nil || state.Provider != provider {
			h.redirectLoginError(w, r, "invalid_state")
			return
		}

		token, err := p.config.Exchange(r.Context(), query.Get("code"))
		if err != nil {
			log.Printf("ERROR: %s code exchange failed: %v", provider, err)
			h.redirectLoginError(w, r, "auth_failed")
			return
		}

		profile, err := fetchProfile(r.Context(), p, token)
		if err != nil {
			log.Printf("ERROR: %s profile fetch failed: %v", provider, err)
			h.redirectLoginError(w, r, "auth_failed")
			return
		}

		student, err := h.resolvePrincipal(r.Context(), provider, profile)
		if err != nil {
			log.Printf("ERROR: %s principal resolution failed: %v", provider, err)
			h.redirectLoginError(w, r, "auth_failed")
			return
		}

		sessionToken, err := h.tokens.Issue(models.KindStudent, student.ID.Hex())
		if err != nil {
			h.redirectLoginError(w, r, "auth_failed")
			return
		}
		h.tokens.SetSessionCookie(w, models.KindStudent, sessionToken)
		http.Redirect(w, r, h.clientURL+"/auth/student-dashboard", http.StatusTemporaryRedirect)
	}
}

// resolvePrincipal maps a provider profile to a student: by federated id
// first, then by email (linking the provider), else a fresh pre-verified
// account with an unusable random password.
func (h *OAuthHandler) resolvePrincipal(ctx context.Context, provider string, profile *federatedProfile) (*models.Student, error) {
	if profile.ID == "" || profile.Email == "" {
		return nil, errors.New("provider profile missing id or email")
	}

	student, err := h.students.FindByFederatedID(ctx, profile.ID)
	if err == nil {
		if err := h.students.UpdateLastLogin(ctx, student.ID.Hex()); err != nil {
			return nil, err
		}
		return student, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	student, err = h.students.FindByEmail(ctx, normalizeEmail(profile.Email))
	if err == nil {
		if student.FederatedID == "" {
			if err := h.students.LinkFederatedID(ctx, student.ID.Hex(), profile.ID, provider); err != nil {
				return nil, err
			}
			student.FederatedID = profile.ID
			student.AuthProvider = provider
		}
		if err := h.students.UpdateLastLogin(ctx, student.ID.Hex()); err != nil {
			return nil, err
		}
		return student, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// Federated identities are pre-trusted; the random password only exists
	// to keep the credential field populated and can never be guessed.
	randomSecret, err := services.GenerateResetToken()
	if err != nil {
		return nil, err
	}
	placeholder, err := utils.HashPassword(randomSecret)
	if err != nil {
		return nil, err
	}

	student = &models.Student{
		FirstName:    profile.FirstName,
		LastName:     profile.LastName,
		Email:        normalizeEmail(profile.Email),
		Password:     placeholder,
		IsVerified:   true,
		LastLogin:    time.Now(),
		FederatedID:  profile.ID,
		AuthProvider: provider,
	}
	if err := h.students.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

func (h *OAuthHandler) redirectLoginError(w http.ResponseWriter, r *http.Request, code string) {
	http.Redirect(w, r, h.clientURL+"/auth/student-login?error="+url.QueryEscape(code), http.StatusTemporaryRedirect)
}

func fetchProfile(ctx context.Context, p *oauthProvider, token *oauth2.Token) (*federatedProfile, error) {
	client := p.config.Client(ctx, token)
	resp, err := client.Get(p.userInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("userinfo failed: status=%d", resp.StatusCode)
	}
	return p.parse(body)
}

func parseGoogleProfile(body []byte) (*federatedProfile, error) {
	var raw struct {
		ID         string `json:"id"`
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	return &federatedProfile{
		ID:        raw.ID,
		Email:     raw.Email,
		FirstName: raw.GivenName,
		LastName:  raw.FamilyName,
	}, nil
}

func parseMicrosoftProfile(body []byte) (*federatedProfile, error) {
	var raw struct {
		ID                string `json:"id"`
		Mail              string `json:"mail"`
		UserPrincipalName string `json:"userPrincipalName"`
		GivenName         string `json:"givenName"`
		Surname           string `json:"surname"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	email := raw.Mail
	if email == "" {
		email = raw.UserPrincipalName
	}
	return &federatedProfile{
		ID:        raw.ID,
		Email:     email,
		FirstName: raw.GivenName,
		LastName:  raw.Surname,
	}, nil
}
