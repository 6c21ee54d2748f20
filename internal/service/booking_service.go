// Package service orchestrates the confirmation protocol: validate, sign the
// identity tuple, build the link, dispatch notifications. Nothing is stored;
// the signed link is the transaction record.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/go-querystring/query"

	"github.com/lumiere-atelier/salon-bookings/internal/catalog"
	"github.com/lumiere-atelier/salon-bookings/internal/domain"
	"github.com/lumiere-atelier/salon-bookings/internal/ics"
	"github.com/lumiere-atelier/salon-bookings/internal/notify"
	"github.com/lumiere-atelier/salon-bookings/internal/signature"
	"github.com/lumiere-atelier/salon-bookings/pkg/events"
	"github.com/lumiere-atelier/salon-bookings/pkg/logger"
)

type Bookings struct {
	signer   *signature.Signer
	notifier *notify.Notifier
	catalog  *catalog.Catalog
	bus      events.Publisher

	baseURL   string
	salonName string
	location  string
}

func NewBookings(signer *signature.Signer, notifier *notify.Notifier, cat *catalog.Catalog, bus events.Publisher, baseURL, salonName, location string) *Bookings {
	return &Bookings{
		signer:    signer,
		notifier:  notifier,
		catalog:   cat,
		bus:       bus,
		baseURL:   baseURL,
		salonName: salonName,
		location:  location,
	}
}

type signedBooking struct {
	domain.BookingRequest
	Key string `url:"key"`
}

// Submit validates the request, signs its identity tuple and dispatches the
// first round of notifications. The returned link is also embedded in the
// owner email; callers only need the error.
func (s *Bookings) Submit(ctx context.Context, req *domain.BookingRequest) (string, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return "", err
	}

	key := s.signer.Compute(req.IdentityTuple()...)
	link, err := s.confirmLink(*req, key)
	if err != nil {
		return "", err
	}

	if err := s.notifier.BookingRequested(ctx, req, s.serviceLabel(req), link); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}

	if err := s.bus.Publish(ctx, events.BookingRequested, events.BookingRequestedEvent{
		Service:     req.Service,
		Package:     req.Package,
		Date:        req.Date,
		Time:        req.Time,
		ClientName:  req.Name,
		ClientEmail: req.Email,
		RequestedAt: time.Now(),
	}); err != nil {
		logger.ErrorContext(ctx, "failed to publish booking.requested", "error", err)
	}

	return link, nil
}

// Verify re-derives the tag from the identity fields carried by the link.
func (s *Bookings) Verify(req *domain.BookingRequest, key string) bool {
	req.Normalize()
	return s.signer.Verify(key, req.IdentityTuple()...)
}

// Confirm is the finalize phase. The tag is checked against the echoed
// original fields only; the final date and time may diverge freely.
func (s *Bookings) Confirm(ctx context.Context, c *domain.BookingConfirmation) error {
	c.Normalize()
	if !s.signer.Verify(c.Key, c.IdentityTuple()...) {
		return ErrInvalidToken
	}

	finalDate, finalTime := c.FinalDate, c.FinalTime
	if finalDate == "" {
		finalDate = c.Date
	}
	if finalTime == "" {
		finalTime = c.Time
	}

	start, err := domain.ParseDateTime(finalDate, finalTime)
	if err != nil {
		return &domain.FieldError{Field: "finalDate/finalTime", Reason: "must be YYYY-MM-DD and HH:MM"}
	}

	label := s.serviceLabel(&c.BookingRequest)

	customerICS := ics.Build(ics.PartyCustomer, ics.Event{
		Service:          c.Service,
		Package:          c.Package,
		Start:            start,
		CounterpartyName: s.salonName,
		Location:         s.location,
	})
	ownerICS := ics.Build(ics.PartyOwner, ics.Event{
		Service:           c.Service,
		Package:           c.Package,
		Start:             start,
		CounterpartyName:  c.Name,
		CounterpartyPhone: c.Phone,
		Location:          s.location,
	})

	if err := s.notifier.BookingConfirmed(ctx, &c.BookingRequest, label, finalDate, finalTime, customerICS, ownerICS); err != nil {
		return fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}

	if err := s.bus.Publish(ctx, events.BookingConfirmed, events.BookingConfirmedEvent{
		Service:     c.Service,
		FinalDate:   finalDate,
		FinalTime:   finalTime,
		ClientEmail: c.Email,
		ConfirmedAt: time.Now(),
	}); err != nil {
		logger.ErrorContext(ctx, "failed to publish booking.confirmed", "error", err)
	}

	return nil
}

func (s *Bookings) confirmLink(req domain.BookingRequest, key string) (string, error) {
	v, err := query.Values(signedBooking{BookingRequest: req, Key: key})
	if err != nil {
		return "", fmt.Errorf("encode confirmation link: %w", err)
	}
	return s.baseURL + "/confirm-booking?" + v.Encode(), nil
}

// serviceLabel decorates the raw service id with the catalog's package name
// when available. A catalog miss keeps the raw id; it never fails the flow.
func (s *Bookings) serviceLabel(req *domain.BookingRequest) string {
	if d, ok := s.catalog.Lookup(req.Service); ok && d.Package != "" {
		return d.Package
	}
	return req.Service
}
