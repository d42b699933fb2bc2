package services

import (
	"context"
	"fmt"

	"coachfit_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
)

// EmailService sends transactional mail through Resend.
type EmailService struct {
	logger *gecho.Logger
	client *resend.Client
	cfg    *structs.EmailConfig
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	return &EmailService{
		logger: logger,
		client: resend.NewClient(cfg.Email.ApiKey),
		cfg:    cfg.Email,
	}
}

// SendWelcomeEmail greets a freshly registered user.
func (es *EmailService) SendWelcomeEmail(ctx context.Context, to, fullName string) error {
	params := &resend.SendEmailRequest{
		From:    es.cfg.From,
		To:      []string{to},
		Subject: "Welcome to CoachFit",
		Html: fmt.Sprintf(
			"<h1>Welcome, %s!</h1><p>Your CoachFit account is ready. Log in to start building and selling your programs.</p>",
			fullName,
		),
	}

	sent, err := es.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	es.logger.Debug("Welcome email sent",
		gecho.Field("email_id", sent.Id),
		gecho.Field("to", to),
	)
	return nil
}
