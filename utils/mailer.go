package utils

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type SESSendAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type Mailer struct {
	client SESSendAPI
	from   string
}

func NewMailer(client SESSendAPI, from string) *Mailer {
	return &Mailer{client: client, from: from}
}

func (m *Mailer) send(ctx context.Context, to, subject, body string) error {
	input := &ses.SendEmailInput{
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(m.from),
	}
	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("email send failed: %v: %w", err, ErrExternalService)
	}
	return nil
}

func (m *Mailer) SendResetEmail(ctx context.Context, to, token string) error {
	body := fmt.Sprintf("Your password reset code is: %s\n\nIt expires in 15 minutes.", token)
	return m.send(ctx, to, "Password Reset Code", body)
}
