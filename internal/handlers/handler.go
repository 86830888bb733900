package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/skillsync-hq/skillsync-backend/internal/repository"
	"github.com/skillsync-hq/skillsync-backend/internal/services"
)

// AuthHandler is the orchestrator for both principal kinds. Every operation
// runs validate → hash/verify → persist → issue token → notify → respond;
// mail failures after a successful write are logged and never unwind state.
type AuthHandler struct {
	students  repository.StudentStore
	companies repository.CompanyStore
	tokens    *services.TokenService
	mail      *services.MailService
}

func NewAuthHandler(students repository.StudentStore, companies repository.CompanyStore, tokens *services.TokenService, mail *services.MailService) *AuthHandler {
	return &AuthHandler{
		students:  students,
		companies: companies,
		tokens:    tokens,
		mail:      mail,
	}
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// logMailFailure keeps notification delivery best-effort.
func logMailFailure(what, to string, err error) {
	if err != nil {
		log.Printf("WARN: failed to send %s email to %s: %v", what, to, err)
	}
}

// Messages shared by enumeration-capable flows: the response is identical
// whether or not the account exists.
const (
	msgResendAck = "If an account exists for that email, a new verification code has been sent"
	msgForgotAck = "If an account exists for that email, a password reset link has been sent"
)
