package sns

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/flowcup/registration-api/internal/config"
	"github.com/flowcup/registration-api/internal/domain"
)

// Sender delivers admin alerts as SMS via AWS SNS. It satisfies
// notify.Notifier; SMS has no interactive affordances, so a new
// registration is announced as a short summary.
type Sender struct {
	client     *sns.Client
	adminPhone string
}

func NewSender(cfg *config.Config) (*Sender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.SNSRegion),
	)
	if err != nil {
		return nil, err
	}
	return &Sender{client: sns.NewFromConfig(awsCfg), adminPhone: cfg.AdminPhoneNumber}, nil
}

func (s *Sender) Alert(ctx context.Context, text string) error {
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: &s.adminPhone,
		Message:     &text,
	})
	return err
}

func (s *Sender) RegistrationSubmitted(ctx context.Context, reg *domain.Registration) error {
	return s.Alert(ctx, fmt.Sprintf("New registration %s from %s (id verified: %t, email verified: %t)",
		reg.ID, reg.Email, reg.IDVerified, reg.EmailVerified))
}
