package email

import (
	"context"
	c "taskflow/internal/core/domain/common"
	"taskflow/internal/core/domain/meeting"
	"taskflow/internal/core/domain/task"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const CHARSET = "UTF-8"

type Sender struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	sender string
}

func NewSender(awsConfig aws.Config, sender string) *Sender {
	return &Sender{
		ses:    ses.NewFromConfig(awsConfig),
		sender: sender,
	}
}

func (s *Sender) SendTaskReminder(ctx context.Context, to c.Email, t task.Task) error {
	return s.send(ctx, string(to), reminderSubject(t), reminderBody(t))
}

func (s *Sender) SendInvitation(ctx context.Context, m meeting.Meeting, attendee c.Email) error {
	return s.send(ctx, string(attendee), invitationSubject(m), invitationBody(m))
}

func (s *Sender) send(ctx context.Context, to string, subject string, body string) error {
	_, err := s.ses.SendEmail(
		ctx,
		&ses.SendEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				ToAddresses: []string{to},
			},
			Message: &types.Message{
				Subject: &types.Content{
					Charset: aws.String(CHARSET),
					Data:    aws.String(subject),
				},
				Body: &types.Body{
					Text: &types.Content{
						Charset: aws.String(CHARSET),
						Data:    aws.String(body),
					},
				},
			},
		},
	)
	return err
}
