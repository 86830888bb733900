package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/skillsync-hq/skillsync-backend/internal/handlers"
	"github.com/skillsync-hq/skillsync-backend/internal/middleware"
	"github.com/skillsync-hq/skillsync-backend/internal/models"
	"github.com/skillsync-hq/skillsync-backend/internal/services"
)

func SetupRoutes(r *chi.Mux, auth *handlers.AuthHandler, oauth *handlers.OAuthHandler, tokens *services.TokenService) {
	requireStudent := middleware.RequireAuth(tokens, models.KindStudent)
	requireCompany := middleware.RequireAuth(tokens, models.KindCompany)

	r.Route("/api/auth", func(r chi.Router) {
		// Student auth routes
		r.Post("/student-signup", auth.StudentSignup)
		r.Post("/verify-student-email", auth.VerifyStudentEmail)
		r.Post("/resend-student-verification-otp", auth.ResendStudentVerificationOTP)
		r.Post("/student-login", auth.StudentLogin)
		r.Post("/student-logout", auth.StudentLogout)
		r.Post("/student-forgot-password", auth.StudentForgotPassword)
		r.Post("/student-reset-password/{token}", auth.StudentResetPassword)
		r.With(requireStudent).Get("/student-check-auth", auth.StudentCheckAuth)

		// Company auth routes
		r.Post("/company-signup", auth.CompanySignup)
		r.Post("/verify-company-email", auth.VerifyCompanyEmail)
		r.Post("/resend-company-verification-otp", auth.ResendCompanyVerificationOTP)
		r.Post("/company-login", auth.CompanyLogin)
		r.Post("/company-logout", auth.CompanyLogout)
		r.Post("/company-forgot-password", auth.CompanyForgotPassword)
		r.Post("/company-reset-password/{token}", auth.CompanyResetPassword)
		r.With(requireCompany).Get("/company-check-auth", auth.CompanyCheckAuth)

		// Federated login (student namespace)
		r.Get("/google", oauth.Begin("google"))
		r.Get("/google/callback", oauth.Callback("google"))
		r.Get("/microsoft", oauth.Begin("microsoft"))
		r.Get("/microsoft/callback", oauth.Callback("microsoft"))
	})
}
