package otp

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// Channel delivers a freshly issued login code to its recipient. Echo reports
// whether the code may additionally be rendered in the HTTP response, which
// only the display channel allows.
type Channel interface {
	Deliver(ctx context.Context, email, code string) error
	Echo() bool
}

// DisplayChannel performs no delivery at all; the handler shows the code on
// the confirmation page instead. Test and demo setups only.
type DisplayChannel struct{}

func (DisplayChannel) Deliver(ctx context.Context, email, code string) error {
	return nil
}

func (DisplayChannel) Echo() bool { return true }

// ResendChannel emails the code through the Resend API.
type ResendChannel struct {
	client *resend.Client
	sender string
}

func NewResendChannel(apiKey, sender string) *ResendChannel {
	return &ResendChannel{client: resend.NewClient(apiKey), sender: sender}
}

func (c *ResendChannel) Deliver(ctx context.Context, email, code string) error {
	params := &resend.SendEmailRequest{
		From:    c.sender,
		To:      []string{email},
		Subject: "Your login code",
		Text:    fmt.Sprintf("Your login code is: %s", code),
	}
	_, err := c.client.Emails.SendWithContext(ctx, params)
	return err
}

func (c *ResendChannel) Echo() bool { return false }
