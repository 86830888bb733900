package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/skillsync-hq/skillsync-backend/internal/middleware"
	"github.com/skillsync-hq/skillsync-backend/internal/models"
	"github.com/skillsync-hq/skillsync-backend/internal/repository"
	"github.com/skillsync-hq/skillsync-backend/internal/services"
	"github.com/skillsync-hq/skillsync-backend/pkg/utils"
)

type StudentSignupRequest struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Gender           string `json:"gender"`
	DateOfBirth      string `json:"date_of_birth"`
	PhoneNumber      string `json:"phone_number"`
	StateOfResidence string `json:"state_of_residence"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	ConfirmPassword  string `json:"confirm_password"`
}

type StudentLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// StudentSignup registers a new student account and starts email
// verification.
func (h *AuthHandler) StudentSignup(w http.ResponseWriter, r *http.Request) {
	var req StudentSignupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = normalizeEmail(req.Email)
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" ||
		req.PhoneNumber == "" || req.StateOfResidence == "" {
		respondError(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if req.Password != req.ConfirmPassword {
		respondError(w, http.StatusBadRequest, "Password and Confirm Password must match")
		return
	}
	if len(req.Password) < 6 {
		respondError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}
	if len(req.PhoneNumber) < 10 || len(req.PhoneNumber) > 15 {
		respondError(w, http.StatusBadRequest, "Invalid phone number")
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	code, err := services.GenerateVerificationCode()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate verification code")
		return
	}
	expires := time.Now().Add(services.VerificationCodeTTL)

	student := &models.Student{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Gender:             req.Gender,
		DateOfBirth:        req.DateOfBirth,
		PhoneNumber:        req.PhoneNumber,
		StateOfResidence:   req.StateOfResidence,
		Email:              req.Email,
		Password:           hashedPassword,
		LastLogin:          time.Now(),
		VerificationCode:   code,
		VerificationExpire: &expires,
	}
	if err := h.students.Create(r.Context(), student); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			respondError(w, http.StatusConflict, "Email already registered")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	token, err := h.tokens.Issue(models.KindStudent, student.ID.Hex())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}
	h.tokens.SetSessionCookie(w, models.KindStudent, token)

	logMailFailure("welcome", student.Email,
		h.mail.SendWelcome(r.Context(), models.KindStudent, student.Email, student.FirstName))
	logMailFailure("verification code", student.Email,
		h.mail.SendVerificationCode(r.Context(), models.KindStudent, student.Email, student.FirstName, code))

	respondOK(w, http.StatusCreated, "Student registered successfully. Please check your email for verification code.",
		map[string]interface{}{"user": student})
}

// VerifyStudentEmail redeems a pending verification code. The code is
// consumed atomically, so it can only ever succeed once.
func (h *AuthHandler) VerifyStudentEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Code == "" {
		respondError(w, http.StatusBadRequest, "Verification code is required")
		return
	}

	student, err := h.students.ConsumeVerificationCode(r.Context(), req.Code, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Wrong and expired are deliberately indistinguishable.
			respondError(w, http.StatusBadRequest, "Invalid or expired verification code")
			return
		}
		respondError(w, http.StatusInternalServerError, "Verification failed")
		return
	}

	logMailFailure("verified success", student.Email,
		h.mail.SendVerifiedSuccess(r.Context(), models.KindStudent, student.Email, student.FirstName))

	respondOK(w, http.StatusOK, "Email verified successfully",
		map[string]interface{}{"user": student})
}

// ResendStudentVerificationOTP issues a fresh code with a fresh window. The
// response does not reveal whether the account exists.
func (h *AuthHandler) ResendStudentVerificationOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Email == "" {
		respondError(w, http.StatusBadRequest, "Email is required")
		return
	}

	student, err := h.students.FindByEmail(r.Context(), normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondOK(w, http.StatusOK, msgResendAck, nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to resend OTP")
		return
	}
	if student.IsVerified {
		// Already verified accounts never carry a live code.
		respondOK(w, http.StatusOK, msgResendAck, nil)
		return
	}

	code, err := services.GenerateVerificationCode()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to resend OTP")
		return
	}
	expires := time.Now().Add(services.VerificationCodeTTL)
	if err := h.students.SetVerificationCode(r.Context(), student.ID.Hex(), code, expires); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to resend OTP")
		return
	}

	logMailFailure("verification code", student.Email,
		h.mail.SendVerificationCode(r.Context(), models.KindStudent, student.Email, student.FirstName, code))

	respondOK(w, http.StatusOK, msgResendAck, nil)
}

// StudentLogin authenticates with email and password. Unknown email and
// wrong password collapse into the same response.
func (h *AuthHandler) StudentLogin(w http.ResponseWriter, r *http.Request) {
	var req StudentLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	student, err := h.students.FindByEmail(r.Context(), normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		respondError(w, http.StatusInternalServerError, "Login failed")
		return
	}
	if !utils.CheckPassword(req.Password, student.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	now := time.Now()
	if err := h.students.UpdateLastLogin(r.Context(), student.ID.Hex()); err != nil {
		respondError(w, http.StatusInternalServerError, "Login failed")
		return
	}
	student.LastLogin = now

	token, err := h.tokens.Issue(models.KindStudent, student.ID.Hex())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}
	h.tokens.SetSessionCookie(w, models.KindStudent, token)

	respondOK(w, http.StatusOK, "Logged in successfully",
		map[string]interface{}{"user": student})
}

// StudentLogout clears the session cookie. Always succeeds, cookie or not.
func (h *AuthHandler) StudentLogout(w http.ResponseWriter, r *http.Request) {
	h.tokens.ClearSessionCookie(w, models.KindStudent)
	respondOK(w, http.StatusOK, "Logged out successfully", nil)
}

// StudentForgotPassword issues a reset token and mails the reset link. The
// response does not reveal whether the account exists.
func (h *AuthHandler) StudentForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Email == "" {
		respondError(w, http.StatusBadRequest, "Email is required")
		return
	}

	student, err := h.students.FindByEmail(r.Context(), normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondOK(w, http.StatusOK, msgForgotAck, nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to process request")
		return
	}

	resetToken, err := services.GenerateResetToken()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to process request")
		return
	}
	expires := time.Now().Add(services.ResetTokenTTL)
	if err := h.students.SetResetToken(r.Context(), student.ID.Hex(), resetToken, expires); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to process request")
		return
	}

	logMailFailure("password reset", student.Email,
		h.mail.SendPasswordResetLink(r.Context(), models.KindStudent, student.Email, student.FirstName, resetToken))

	respondOK(w, http.StatusOK, msgForgotAck, nil)
}

// StudentResetPassword redeems a reset token and replaces the password. The
// token is consumed and the hash swapped in a single atomic update.
func (h *AuthHandler) StudentResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	var req struct {
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Password is required")
		return
	}
	if len(req.Password) < 6 {
		respondError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to reset password")
		return
	}

	student, err := h.students.ConsumeResetToken(r.Context(), token, hashedPassword, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusBadRequest, "Invalid or expired reset token")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to reset password")
		return
	}

	logMailFailure("password reset success", student.Email,
		h.mail.SendPasswordResetSuccess(r.Context(), models.KindStudent, student.Email, student.FirstName))

	respondOK(w, http.StatusOK, "Password reset successfully", nil)
}

// StudentCheckAuth returns the authenticated student. The route is gated by
// the session middleware.
func (h *AuthHandler) StudentCheckAuth(w http.ResponseWriter, r *http.Request) {
	principalID := middleware.PrincipalID(r.Context())
	student, err := h.students.FindByID(r.Context(), principalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to load account")
		return
	}
	respondOK(w, http.StatusOK, "Authenticated",
		map[string]interface{}{"user": student})
}
