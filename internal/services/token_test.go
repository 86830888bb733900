package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillsync-hq/skillsync-backend/internal/models"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc := NewTokenService("student-secret", "company-secret", false)

	token, err := svc.Issue(models.KindStudent, "6123456789abcdef01234567")
	require.NoError(t, err)

	id, err := svc.Verify(models.KindStudent, token)
	require.NoError(t, err)
	assert.Equal(t, "6123456789abcdef01234567", id)
}

func TestVerifyRejectsOtherKind(t *testing.T) {
	svc := NewTokenService("student-secret", "company-secret", false)

	studentToken, err := svc.Issue(models.KindStudent, "6123456789abcdef01234567")
	require.NoError(t, err)

	_, err = svc.Verify(models.KindCompany, studentToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsOtherKindSameSecret(t *testing.T) {
	// Even with identical secrets the kind claim keeps the surfaces apart.
	svc := NewTokenService("shared-secret", "shared-secret", false)

	studentToken, err := svc.Issue(models.KindStudent, "6123456789abcdef01234567")
	require.NoError(t, err)

	_, err = svc.Verify(models.KindCompany, studentToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	issuer := NewTokenService("secret-a", "secret-a", false)
	verifier := NewTokenService("secret-b", "secret-b", false)

	token, err := issuer.Issue(models.KindStudent, "6123456789abcdef01234567")
	require.NoError(t, err)

	_, err = verifier.Verify(models.KindStudent, token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := NewTokenService("student-secret", "company-secret", false)

	claims := jwt.MapClaims{
		"kind": string(models.KindStudent),
		"sub":  "6123456789abcdef01234567",
		"iat":  time.Now().Add(-2 * SessionDuration).Unix(),
		"exp":  time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("student-secret"))
	require.NoError(t, err)

	_, err = svc.Verify(models.KindStudent, token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyRejectsMissingSubject(t *testing.T) {
	svc := NewTokenService("student-secret", "company-secret", false)

	claims := jwt.MapClaims{
		"kind": string(models.KindStudent),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("student-secret"))
	require.NoError(t, err)

	_, err = svc.Verify(models.KindStudent, token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := NewTokenService("student-secret", "company-secret", false)

	_, err := svc.Verify(models.KindStudent, "not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = svc.Verify(models.KindStudent, "")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestCookieNamePerKind(t *testing.T) {
	assert.Equal(t, "usertoken", CookieName(models.KindStudent))
	assert.Equal(t, "companytoken", CookieName(models.KindCompany))
}

func TestSetSessionCookieDevelopment(t *testing.T) {
	svc := NewTokenService("a", "b", false)
	rec := httptest.NewRecorder()
	svc.SetSessionCookie(rec, models.KindStudent, "tok")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "usertoken", c.Name)
	assert.Equal(t, "tok", c.Value)
	assert.True(t, c.HttpOnly)
	assert.False(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, int(SessionDuration.Seconds()), c.MaxAge)
}

func TestSetSessionCookieProduction(t *testing.T) {
	svc := NewTokenService("a", "b", true)
	rec := httptest.NewRecorder()
	svc.SetSessionCookie(rec, models.KindCompany, "tok")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "companytoken", c.Name)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
}

func TestClearSessionCookie(t *testing.T) {
	svc := NewTokenService("a", "b", false)
	rec := httptest.NewRecorder()
	svc.ClearSessionCookie(rec, models.KindStudent)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "usertoken", c.Name)
	assert.Empty(t, c.Value)
	assert.Negative(t, c.MaxAge)
}
