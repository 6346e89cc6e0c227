package email

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"

	"finsim.backend/internal/config"
	"finsim.backend/internal/domain/gateways"
	"finsim.backend/pkg/logger"
)

// sesAPI is the slice of the SES v2 client the mailer uses
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESMailer sends transactional email via Amazon SES v2. When no from
// address is configured the mailer runs disabled and Send only logs.
type SESMailer struct {
	client    sesAPI
	fromEmail string
	fromName  string
	enabled   bool
}

var _ gateways.Mailer = (*SESMailer)(nil)

// NewSESMailer builds a mailer from the email config. An empty
// FromEmail yields a disabled mailer instead of an error so local
// environments work without AWS credentials.
func NewSESMailer(cfg config.EmailConfig) (*SESMailer, error) {
	if cfg.FromEmail == "" {
		logger.GetLogger().Info("email disabled: EMAIL_FROM not configured")
		return &SESMailer{enabled: false}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	logger.GetLogger().Info("email enabled",
		zap.String("from", cfg.FromEmail),
		zap.String("region", cfg.AWSRegion))

	return &SESMailer{
		client:    sesv2.NewFromConfig(awsCfg),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		enabled:   true,
	}, nil
}

func (m *SESMailer) Enabled() bool {
	return m.enabled
}

func (m *SESMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if !m.enabled {
		logger.WithContext(ctx).Info("skipping email send (mailer disabled)",
			zap.String("to", to),
			zap.String("subject", subject))
		return nil
	}

	fromAddress := m.fromEmail
	if m.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	logger.WithContext(ctx).Info("email sent",
		zap.String("to", to),
		zap.String("subject", subject))
	return nil
}
