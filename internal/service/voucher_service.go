package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/go-querystring/query"

	"github.com/lumiere-atelier/salon-bookings/internal/domain"
	"github.com/lumiere-atelier/salon-bookings/internal/notify"
	"github.com/lumiere-atelier/salon-bookings/internal/signature"
	"github.com/lumiere-atelier/salon-bookings/pkg/events"
	"github.com/lumiere-atelier/salon-bookings/pkg/logger"
)

type Vouchers struct {
	signer   *signature.Signer
	notifier *notify.Notifier
	bus      events.Publisher

	baseURL string
}

func NewVouchers(signer *signature.Signer, notifier *notify.Notifier, bus events.Publisher, baseURL string) *Vouchers {
	return &Vouchers{
		signer:   signer,
		notifier: notifier,
		bus:      bus,
		baseURL:  baseURL,
	}
}

type signedVoucher struct {
	domain.VoucherOrder
	Key string `url:"key"`
}

func (s *Vouchers) Submit(ctx context.Context, order *domain.VoucherOrder) (string, error) {
	order.Normalize()
	if err := order.Validate(); err != nil {
		return "", err
	}

	key := s.signer.Compute(order.IdentityTuple()...)

	v, err := query.Values(signedVoucher{VoucherOrder: *order, Key: key})
	if err != nil {
		return "", fmt.Errorf("encode confirmation link: %w", err)
	}
	link := s.baseURL + "/confirm-payment?" + v.Encode()

	if err := s.notifier.VoucherOrdered(ctx, order, link); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}

	if err := s.bus.Publish(ctx, events.VoucherOrdered, events.VoucherOrderedEvent{
		RecipientEmail: order.RecipientEmail,
		Type:           string(order.Type),
		Amount:         order.Amount,
		Service:        order.Service,
		PaymentMethod:  order.PaymentMethod,
		OrderedAt:      time.Now(),
	}); err != nil {
		logger.ErrorContext(ctx, "failed to publish voucher.ordered", "error", err)
	}

	return link, nil
}

// ConfirmPayment settles a voucher on a valid link. Unlike bookings this is a
// single step: there is no edit phase and the dispatch happens directly on the
// verified GET.
func (s *Vouchers) ConfirmPayment(ctx context.Context, order *domain.VoucherOrder, key string) error {
	order.Normalize()
	if !s.signer.Verify(key, order.IdentityTuple()...) {
		return ErrInvalidToken
	}

	if err := s.notifier.VoucherPaid(ctx, order); err != nil {
		return fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}

	if err := s.bus.Publish(ctx, events.VoucherPaid, events.VoucherPaidEvent{
		RecipientEmail: order.RecipientEmail,
		Type:           string(order.Type),
		Amount:         order.Amount,
		Service:        order.Service,
		PaidAt:         time.Now(),
	}); err != nil {
		logger.ErrorContext(ctx, "failed to publish voucher.paid", "error", err)
	}

	return nil
}
