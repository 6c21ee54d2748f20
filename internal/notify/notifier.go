// Package notify renders and dispatches the protocol's emails. Each intake or
// finalize step sends exactly two messages, one per party, and the step only
// counts as done when both deliveries succeed.
package notify

import (
	"bytes"
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/lumiere-atelier/salon-bookings/internal/domain"
	"github.com/lumiere-atelier/salon-bookings/internal/mailer"
	"github.com/lumiere-atelier/salon-bookings/pkg/logger"
)

type Notifier struct {
	sender     mailer.Sender
	salonName  string
	ownerName  string
	ownerEmail string
}

func New(sender mailer.Sender, salonName, ownerName, ownerEmail string) *Notifier {
	return &Notifier{
		sender:     sender,
		salonName:  salonName,
		ownerName:  ownerName,
		ownerEmail: ownerEmail,
	}
}

// BookingRequested notifies the owner (with the confirmation link) and
// acknowledges the customer. serviceLabel is the catalog-decorated service
// name, falling back to the raw id on a catalog miss.
func (n *Notifier) BookingRequested(ctx context.Context, b *domain.BookingRequest, serviceLabel, confirmURL string) error {
	view := n.bookingView(b, serviceLabel)
	view.ConfirmURL = confirmURL

	owner, err := n.compose(eventBookingRequested, partyOwner, view,
		n.ownerEmail, n.ownerName,
		fmt.Sprintf("New booking request: %s on %s", serviceLabel, b.Date),
		fmt.Sprintf("%s (%s, %s) asked for %s on %s at %s.\n\nConfirm here: %s\n",
			b.Name, b.Email, b.Phone, serviceLabel, b.Date, b.Time, confirmURL))
	if err != nil {
		return err
	}

	customer, err := n.compose(eventBookingRequested, partyCustomer, view,
		b.Email, b.Name,
		fmt.Sprintf("We received your booking request - %s", n.salonName),
		fmt.Sprintf("Hi %s,\n\nthank you for booking %s on %s at %s. We will confirm the exact time by email shortly.\n",
			b.Name, serviceLabel, b.Date, b.Time))
	if err != nil {
		return err
	}

	return n.dispatchPair(ctx, owner, customer)
}

// BookingConfirmed sends the confirmed notice to both parties, each with its
// own calendar artifact attached.
func (n *Notifier) BookingConfirmed(ctx context.Context, b *domain.BookingRequest, serviceLabel, finalDate, finalTime string, customerICS, ownerICS []byte) error {
	view := n.bookingView(b, serviceLabel)
	view.FinalDate = finalDate
	view.FinalTime = finalTime

	owner, err := n.compose(eventBookingConfirmed, partyOwner, view,
		n.ownerEmail, n.ownerName,
		fmt.Sprintf("Booking confirmed: %s on %s at %s", serviceLabel, finalDate, finalTime),
		fmt.Sprintf("Confirmed %s (%s, %s) for %s on %s at %s.\n",
			b.Name, b.Email, b.Phone, serviceLabel, finalDate, finalTime))
	if err != nil {
		return err
	}
	owner.Attachments = []mailer.Attachment{{Filename: "appointment.ics", Content: ownerICS}}

	customer, err := n.compose(eventBookingConfirmed, partyCustomer, view,
		b.Email, b.Name,
		fmt.Sprintf("Your booking is confirmed - %s", n.salonName),
		fmt.Sprintf("Hi %s,\n\nyour appointment for %s is confirmed for %s at %s. A calendar invite is attached.\n",
			b.Name, serviceLabel, finalDate, finalTime))
	if err != nil {
		return err
	}
	customer.Attachments = []mailer.Attachment{{Filename: "appointment.ics", Content: customerICS}}

	return n.dispatchPair(ctx, owner, customer)
}

func (n *Notifier) VoucherOrdered(ctx context.Context, v *domain.VoucherOrder, confirmURL string) error {
	view := n.voucherView(v)
	view.ConfirmURL = confirmURL

	owner, err := n.compose(eventVoucherOrdered, partyOwner, view,
		n.ownerEmail, n.ownerName,
		fmt.Sprintf("New voucher order from %s", v.RecipientName),
		fmt.Sprintf("%s (%s) ordered a %s voucher. Payment: %s.\n\nMark as paid: %s\n",
			v.RecipientName, v.RecipientEmail, v.Type, v.PaymentMethod, confirmURL))
	if err != nil {
		return err
	}

	customer, err := n.compose(eventVoucherOrdered, partyCustomer, view,
		v.RecipientEmail, v.RecipientName,
		fmt.Sprintf("We received your voucher order - %s", n.salonName),
		fmt.Sprintf("Hi %s,\n\nthank you for your %s voucher order. We will confirm it once the payment arrives.\n",
			v.RecipientName, v.Type))
	if err != nil {
		return err
	}

	return n.dispatchPair(ctx, owner, customer)
}

func (n *Notifier) VoucherPaid(ctx context.Context, v *domain.VoucherOrder) error {
	view := n.voucherView(v)

	owner, err := n.compose(eventVoucherPaid, partyOwner, view,
		n.ownerEmail, n.ownerName,
		fmt.Sprintf("Voucher settled: %s", v.RecipientName),
		fmt.Sprintf("The voucher for %s (%s) is settled.\n", v.RecipientName, v.RecipientEmail))
	if err != nil {
		return err
	}

	customer, err := n.compose(eventVoucherPaid, partyCustomer, view,
		v.RecipientEmail, v.RecipientName,
		fmt.Sprintf("Your voucher is confirmed - %s", n.salonName),
		fmt.Sprintf("Hi %s,\n\nwe received your payment, your voucher is ready.\n", v.RecipientName))
	if err != nil {
		return err
	}

	return n.dispatchPair(ctx, owner, customer)
}

func (n *Notifier) compose(ev event, p party, view any, toEmail, toName, subject, text string) (mailer.Message, error) {
	t, ok := htmlTemplates[templateKey{ev, p}]
	if !ok {
		return mailer.Message{}, fmt.Errorf("no template for event %d party %d", ev, p)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, view); err != nil {
		return mailer.Message{}, fmt.Errorf("render %s: %w", t.Name(), err)
	}

	return mailer.Message{
		ToEmail: toEmail,
		ToName:  toName,
		Subject: subject,
		Text:    text,
		HTML:    buf.String(),
	}, nil
}

// dispatchPair sends both messages concurrently and fails if either send
// fails. Nothing is rolled back on partial delivery; the caller's retry story
// relies on the link staying valid.
func (n *Notifier) dispatchPair(ctx context.Context, a, b mailer.Message) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, msg := range []mailer.Message{a, b} {
		msg := msg
		g.Go(func() error {
			id, err := n.sender.Send(ctx, msg)
			if err != nil {
				logger.ErrorContext(ctx, "email dispatch failed", "to", msg.ToEmail, "subject", msg.Subject, "error", err)
				return err
			}
			logger.InfoContext(ctx, "email dispatched", "to", msg.ToEmail, "subject", msg.Subject, "message_id", id)
			return nil
		})
	}
	return g.Wait()
}

func (n *Notifier) bookingView(b *domain.BookingRequest, serviceLabel string) bookingView {
	return bookingView{
		Salon:   n.salonName,
		Name:    b.Name,
		Email:   b.Email,
		Phone:   b.Phone,
		Service: serviceLabel,
		Package: b.Package,
		Date:    b.Date,
		Time:    b.Time,
		Note:    b.Note,
	}
}

func (n *Notifier) voucherView(v *domain.VoucherOrder) voucherView {
	return voucherView{
		Salon:   n.salonName,
		Name:    v.RecipientName,
		Email:   v.RecipientEmail,
		Phone:   v.RecipientPhone,
		Type:    string(v.Type),
		Amount:  v.Amount,
		Service: v.Service,
		Package: v.Package,
		Message: v.Message,
		Payment: v.PaymentMethod,
	}
}
