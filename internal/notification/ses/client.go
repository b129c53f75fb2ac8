// Package ses delivers activation email through AWS SES v2.
package ses

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	appconfig "github.com/dtroode/signup-server/internal/config"
	"github.com/dtroode/signup-server/internal/model"
)

const activationSubject = "Account activation"

// api is the slice of the SES v2 client used by this package.
type api interface {
	SendEmail(ctx context.Context, input *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

var _ model.ActivationNotifier = (*Client)(nil)

// Client sends activation messages through SES.
type Client struct {
	client api
	sender string
}

// NewClient creates a new SES notifier client.
func NewClient(ctx context.Context, cfg appconfig.SES) (*Client, error) {
	creds := credentials.NewStaticCredentialsProvider(
		cfg.AccessKey,
		cfg.SecretKey,
		"", // session token (empty for static creds)
	)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &Client{
		client: sesv2.NewFromConfig(awsCfg),
		sender: cfg.Sender,
	}, nil
}

// SendActivation sends the activation message. The body embeds both the
// recipient address and the literal token. A single failure is returned
// to the caller; no retry happens here.
func (c *Client) SendActivation(ctx context.Context, email, token string) error {
	html := fmt.Sprintf(`<div>Hello %s,</div>
<div>Your activation token is:</div>
<div>%s</div>`, email, token)
	text := fmt.Sprintf("Hello %s, your activation token is: %s", email, token)

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(c.sender),
		Destination: &types.Destination{
			ToAddresses: []string{email},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(activationSubject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(html)},
					Text: &types.Content{Data: aws.String(text)},
				},
			},
		},
	}

	if _, err := c.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("sending activation email: %w", err)
	}

	return nil
}
