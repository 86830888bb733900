package services

import (
	"context"
	"fmt"

	"github.com/skillsync-hq/skillsync-backend/internal/models"
)

// MailService composes the transactional mails of the auth flows. Delivery
// is best effort: callers log failures and never roll back persisted state
// because a mail did not go out.
type MailService struct {
	mailer    Mailer
	clientURL string
}

func NewMailService(mailer Mailer, clientURL string) *MailService {
	return &MailService{mailer: mailer, clientURL: clientURL}
}

func greeting(kind models.Kind, name string) string {
	if kind == models.KindCompany {
		return "Dear " + name
	}
	return "Hello " + name
}

func audience(kind models.Kind) string {
	if kind == models.KindCompany {
		return "companies like yours find the perfect talent"
	}
	return "students like you find the perfect job"
}

// SendWelcome is sent once at signup, alongside the verification code mail.
func (s *MailService) SendWelcome(ctx context.Context, kind models.Kind, to, name string) error {
	body := fmt.Sprintf("%s,\n\nWelcome to SkillSync! We're excited to have you join our platform.\n\n"+
		"At SkillSync, we're dedicated to helping %s.\n\n"+
		"To get started, please verify your email address using the verification code we've sent in a separate email.\n\n"+
		"Best regards,\nSkillSync Team", greeting(kind, name), audience(kind))
	return s.mailer.Send(ctx, to, "Welcome to SkillSync!", body)
}

// SendVerificationCode carries the 6-digit one-time code.
func (s *MailService) SendVerificationCode(ctx context.Context, kind models.Kind, to, name, code string) error {
	body := fmt.Sprintf("%s,\n\nYour verification code is: %s\n\n"+
		"This code will expire in 10 minutes.\n\n"+
		"If you did not request this code, please ignore this email.\n\n"+
		"Best regards,\nSkillSync Team", greeting(kind, name), code)
	return s.mailer.Send(ctx, to, "SkillSync - Email Verification Code", body)
}

// SendVerifiedSuccess confirms that the account email has been verified.
func (s *MailService) SendVerifiedSuccess(ctx context.Context, kind models.Kind, to, name string) error {
	body := fmt.Sprintf("%s,\n\nYour email address has been verified successfully. "+
		"You now have full access to all SkillSync features.\n\n"+
		"Best regards,\nSkillSync Team", greeting(kind, name))
	return s.mailer.Send(ctx, to, "SkillSync - Account Verified Successfully", body)
}

// SendPasswordResetLink mails the reset URL containing the opaque token.
func (s *MailService) SendPasswordResetLink(ctx context.Context, kind models.Kind, to, name, token string) error {
	resetLink := fmt.Sprintf("%s/auth/%s-reset-password/%s", s.clientURL, kind, token)
	body := fmt.Sprintf("%s,\n\nClick the following link to reset your password:\n%s\n\n"+
		"This link will expire in 10 minutes.\n\n"+
		"If you did not request this, please ignore this email.\n\n"+
		"Best regards,\nSkillSync Team", greeting(kind, name), resetLink)
	return s.mailer.Send(ctx, to, "SkillSync - Reset Password", body)
}

// SendPasswordResetSuccess confirms a completed password reset.
func (s *MailService) SendPasswordResetSuccess(ctx context.Context, kind models.Kind, to, name string) error {
	body := fmt.Sprintf("%s,\n\nYour password has been reset successfully.\n\n"+
		"If you did not make this change, please contact support immediately.\n\n"+
		"Best regards,\nSkillSync Team", greeting(kind, name))
	return s.mailer.Send(ctx, to, "SkillSync - Password Reset Successful", body)
}
