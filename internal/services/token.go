package services

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/skillsync-hq/skillsync-backend/internal/models"
)

// SessionDuration is how long a session token and its cookie stay valid.
const SessionDuration = 15 * 24 * time.Hour

var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

type sessionClaims struct {
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies stateless session tokens. Each principal
// kind has its own signing secret, so a student token can never be replayed
// against the company surface even though the signing scheme is shared.
type TokenService struct {
	secrets    map[models.Kind][]byte
	production bool
}

func NewTokenService(studentSecret, companySecret string, production bool) *TokenService {
	return &TokenService{
		secrets: map[models.Kind][]byte{
			models.KindStudent: []byte(studentSecret),
			models.KindCompany: []byte(companySecret),
		},
		production: production,
	}
}

// Issue signs a session token for the principal.
func (s *TokenService) Issue(kind models.Kind, principalID string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Kind: string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principalID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionDuration)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secrets[kind])
}

// Verify checks the token against the kind's secret and returns the principal
// id. Expired tokens return ErrTokenExpired; everything else that fails
// (wrong signature, wrong kind, malformed) returns ErrTokenInvalid.
func (s *TokenService) Verify(kind models.Kind, tokenString string) (string, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secrets[kind], nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if claims.Kind != string(kind) || claims.Subject == "" {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}

// CookieName returns the session cookie name for a kind.
func CookieName(kind models.Kind) string {
	if kind == models.KindCompany {
		return "companytoken"
	}
	return "usertoken"
}

// SetSessionCookie writes the session cookie. Strict/secure in production,
// lax/insecure for local development.
func (s *TokenService) SetSessionCookie(w http.ResponseWriter, kind models.Kind, token string) {
	cookie := &http.Cookie{
		Name:     CookieName(kind),
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
	if !s.production {
		cookie.Secure = false
		cookie.SameSite = http.SameSiteLaxMode
	}
	http.SetCookie(w, cookie)
}

// ClearSessionCookie expires the session cookie. Safe to call when no cookie
// is present.
func (s *TokenService) ClearSessionCookie(w http.ResponseWriter, kind models.Kind) {
	cookie := &http.Cookie{
		Name:     CookieName(kind),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
	if !s.production {
		cookie.Secure = false
		cookie.SameSite = http.SameSiteLaxMode
	}
	http.SetCookie(w, cookie)
}
