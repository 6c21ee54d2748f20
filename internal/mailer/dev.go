package mailer

import (
	"context"
	"fmt"

	"github.com/lumiere-atelier/salon-bookings/pkg/logger"
)

// DevMailer logs messages instead of sending them. Used when EMAIL_DEV_MODE
// is set so the full confirmation flow can be exercised locally.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) Send(_ context.Context, msg Message) (string, error) {
	logger.Info("[DEV MAIL]",
		"to", msg.ToEmail,
		"name", msg.ToName,
		"subject", msg.Subject,
		"attachments", len(msg.Attachments),
	)

	fmt.Printf("\n"+
		"---------------------------------------------------------------\n"+
		"EMAIL (DEV MODE)\n"+
		"---------------------------------------------------------------\n"+
		"To: %s (%s)\n"+
		"Subject: %s\n"+
		"\n"+
		"%s\n"+
		"---------------------------------------------------------------\n\n",
		msg.ToEmail, msg.ToName, msg.Subject, msg.Text)

	return "dev", nil
}
