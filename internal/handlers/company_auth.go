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

type CompanySignupRequest struct {
	CompanyName         string   `json:"company_name"`
	CompanyPhoneNumber  string   `json:"company_phone_number"`
	CompanyEmail        string   `json:"company_email"`
	Password            string   `json:"password"`
	ConfirmPassword     string   `json:"confirm_password"`
	IndustryType        string   `json:"industry_type"`
	HeadquarterLocation string   `json:"headquarter_location"`
	CompanySize         string   `json:"company_size"`
	YearOfEstablishment string   `json:"year_of_establishment"`
	ContactFirstName    string   `json:"contact_first_name"`
	ContactLastName     string   `json:"contact_last_name"`
	ContactDesignation  string   `json:"contact_designation"`
	ContactEmail        string   `json:"contact_email"`
	ContactPhoneNumber  string   `json:"contact_phone_number"`
	JobRoles            []string `json:"job_roles"`
	AreasOfExpertise    []string `json:"areas_of_expertise"`
	CompanyWebsite      string   `json:"company_website"`
	LinkedInProfile     string   `json:"linkedin_profile"`
}

type CompanyLoginRequest struct {
	CompanyEmail string `json:"company_email"`
	Password     string `json:"password"`
}

// CompanySignup registers a new company account and starts email
// verification.
func (h *AuthHandler) CompanySignup(w http.ResponseWriter, r *http.Request) {
	var req CompanySignupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.CompanyEmail = normalizeEmail(req.CompanyEmail)
	if req.CompanyName == "" || req.CompanyPhoneNumber == "" || req.CompanyEmail == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if req.Password != req.ConfirmPassword {
		respondError(w, http.StatusBadRequest, "Passwords do not match")
		return
	}
	if len(req.Password) < 6 {
		respondError(w, http.StatusBadRequest, "Password must be at least 6 characters")
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

	company := &models.Company{
		CompanyName:         req.CompanyName,
		CompanyPhoneNumber:  req.CompanyPhoneNumber,
		IndustryType:        req.IndustryType,
		HeadquarterLocation: req.HeadquarterLocation,
		CompanySize:         req.CompanySize,
		YearOfEstablishment: req.YearOfEstablishment,
		ContactFirstName:    req.ContactFirstName,
		ContactLastName:     req.ContactLastName,
		ContactDesignation:  req.ContactDesignation,
		ContactEmail:        req.ContactEmail,
		ContactPhoneNumber:  req.ContactPhoneNumber,
		JobRoles:            req.JobRoles,
		AreasOfExpertise:    req.AreasOfExpertise,
		CompanyWebsite:      req.CompanyWebsite,
		LinkedInProfile:     req.LinkedInProfile,
		Email:               req.CompanyEmail,
		Password:            hashedPassword,
		LastLogin:           time.Now(),
		VerificationCode:    code,
		VerificationExpire:  &expires,
	}
	if err := h.companies.Create(r.Context(), company); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			respondError(w, http.StatusConflict, "Email already registered")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	token, err := h.tokens.Issue(models.KindCompany, company.ID.Hex())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}
	h.tokens.SetSessionCookie(w, models.KindCompany, token)

	logMailFailure("welcome", company.Email,
		h.mail.SendWelcome(r.Context(), models.KindCompany, company.Email, company.CompanyName))
	logMailFailure("verification code", company.Email,
		h.mail.SendVerificationCode(r.Context(), models.KindCompany, company.Email, company.CompanyName, code))

	respondOK(w, http.StatusCreated, "Company registered successfully. Please check your email for verification code.",
		map[string]interface{}{"company": company})
}

// VerifyCompanyEmail redeems a pending verification code atomically.
func (h *AuthHandler) VerifyCompanyEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Code == "" {
		respondError(w, http.StatusBadRequest, "Verification code is required")
		return
	}

	company, err := h.companies.ConsumeVerificationCode(r.Context(), req.Code, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusBadRequest, "Invalid or expired verification code")
			return
		}
		respondError(w, http.StatusInternalServerError, "Verification failed")
		return
	}

	logMailFailure("verified success", company.Email,
		h.mail.SendVerifiedSuccess(r.Context(), models.KindCompany, company.Email, company.CompanyName))

	respondOK(w, http.StatusOK, "Email verified successfully",
		map[string]interface{}{"company": company})
}

// ResendCompanyVerificationOTP issues a fresh code with a fresh window.
func (h *AuthHandler) ResendCompanyVerificationOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CompanyEmail string `json:"company_email"`
	}
	if err := decodeJSON(r, &req); err != nil || req.CompanyEmail == "" {
		respondError(w, http.StatusBadRequest, "Email is required")
		return
	}

	company, err := h.companies.FindByEmail(r.Context(), normalizeEmail(req.CompanyEmail))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondOK(w, http.StatusOK, msgResendAck, nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to resend OTP")
		return
	}
	if company.IsVerified {
		respondOK(w, http.StatusOK, msgResendAck, nil)
		return
	}

	code, err := services.GenerateVerificationCode()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to resend OTP")
		return
	}
	expires := time.Now().Add(services.VerificationCodeTTL)
	if err := h.companies.SetVerificationCode(r.Context(), company.ID.Hex(), code, expires); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to resend OTP")
		return
	}

	logMailFailure("verification code", company.Email,
		h.mail.SendVerificationCode(r.Context(), models.KindCompany, company.Email, company.CompanyName, code))

	respondOK(w, http.StatusOK, msgResendAck, nil)
}

// CompanyLogin authenticates with company email and password.
func (h *AuthHandler) CompanyLogin(w http.ResponseWriter, r *http.Request) {
	var req CompanyLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CompanyEmail == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	company, err := h.companies.FindByEmail(r.Context(), normalizeEmail(req.CompanyEmail))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		respondError(w, http.StatusInternalServerError, "Login failed")
		return
	}
	if !utils.CheckPassword(req.Password, company.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	now := time.Now()
	if err := h.companies.UpdateLastLogin(r.Context(), company.ID.Hex()); err != nil {
		respondError(w, http.StatusInternalServerError, "Login failed")
		return
	}
	company.LastLogin = now

	token, err := h.tokens.Issue(models.KindCompany, company.ID.Hex())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}
	h.tokens.SetSessionCookie(w, models.KindCompany, token)

	respondOK(w, http.StatusOK, "Logged in successfully",
		map[string]interface{}{"company": company})
}

// CompanyLogout clears the session cookie. Always succeeds.
func (h *AuthHandler) CompanyLogout(w http.ResponseWriter, r *http.Request) {
	h.tokens.ClearSessionCookie(w, models.KindCompany)
	respondOK(w, http.StatusOK, "Logged out successfully", nil)
}

// CompanyForgotPassword issues a reset token and mails the reset link.
func (h *AuthHandler) CompanyForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CompanyEmail string `json:"company_email"`
	}
	if err := decodeJSON(r, &req); err != nil || req.CompanyEmail == "" {
		respondError(w, http.StatusBadRequest, "Email is required")
		return
	}

	company, err := h.companies.FindByEmail(r.Context(), normalizeEmail(req.CompanyEmail))
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
	if err := h.companies.SetResetToken(r.Context(), company.ID.Hex(), resetToken, expires); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to process request")
		return
	}

	logMailFailure("password reset", company.Email,
		h.mail.SendPasswordResetLink(r.Context(), models.KindCompany, company.Email, company.CompanyName, resetToken))

	respondOK(w, http.StatusOK, msgForgotAck, nil)
}

// CompanyResetPassword redeems a reset token and replaces the password.
func (h *AuthHandler) CompanyResetPassword(w http.ResponseWriter, r *http.Request) {
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

	company, err := h.companies.ConsumeResetToken(r.Context(), token, hashedPassword, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusBadRequest, "Invalid or expired reset token")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to reset password")
		return
	}

	logMailFailure("password reset success", company.Email,
		h.mail.SendPasswordResetSuccess(r.Context(), models.KindCompany, company.Email, company.CompanyName))

	respondOK(w, http.StatusOK, "Password reset successfully", nil)
}

// CompanyCheckAuth returns the authenticated company. The route is gated by
// the session middleware.
func (h *AuthHandler) CompanyCheckAuth(w http.ResponseWriter, r *http.Request) {
	principalID := middleware.PrincipalID(r.Context())
	company, err := h.companies.FindByID(r.Context(), principalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to load account")
		return
	}
	respondOK(w, http.StatusOK, "Authenticated",
		map[string]interface{}{"company": company})
}
