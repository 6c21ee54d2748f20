package mailer

import "context"

// Attachment is a file carried by a message, typically a calendar invite.
type Attachment struct {
	Filename string
	Content  []byte
}

// Message is one rendered email ready for delivery.
type Message struct {
	ToEmail     string
	ToName      string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

// Sender is the transactional-email capability. Implementations must respect
// ctx and return an error for anything short of accepted-for-delivery.
type Sender interface {
	Send(ctx context.Context, msg Message) (messageID string, err error)
}
