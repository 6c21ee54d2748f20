package domain_test

import (
	"errors"
	"testing"

	"github.com/lumiere-atelier/salon-bookings/internal/domain"
)

func validBooking() domain.BookingRequest {
	return domain.BookingRequest{
		Service: "coloring",
		Date:    "2025-06-01",
		Time:    "10:00",
		Name:    "Anna Ruiz",
		Email:   "anna@example.com",
		Phone:   "+420777123456",
	}
}

func TestBookingValidate(t *testing.T) {
	b := validBooking()
	if err := b.Validate(); err != nil {
		t.Fatalf("valid booking rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*domain.BookingRequest)
	}{
		{"missing service", func(b *domain.BookingRequest) { b.Service = "" }},
		{"missing date", func(b *domain.BookingRequest) { b.Date = "" }},
		{"missing time", func(b *domain.BookingRequest) { b.Time = "" }},
		{"missing name", func(b *domain.BookingRequest) { b.Name = "" }},
		{"missing email", func(b *domain.BookingRequest) { b.Email = "" }},
		{"missing phone", func(b *domain.BookingRequest) { b.Phone = "" }},
		{"bad email", func(b *domain.BookingRequest) { b.Email = "not-an-email" }},
		{"bad date", func(b *domain.BookingRequest) { b.Date = "June 1st" }},
		{"bad time", func(b *domain.BookingRequest) { b.Time = "ten" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := validBooking()
			tc.mutate(&b)
			var fe *domain.FieldError
			if err := b.Validate(); !errors.As(err, &fe) {
				t.Fatalf("expected FieldError, got %v", err)
			}
		})
	}
}

func TestBookingNormalize(t *testing.T) {
	b := validBooking()
	b.Email = "  Anna@Example.COM "
	b.Phone = "+420 777 123 456"
	b.Name = " Anna Ruiz "
	b.Normalize()

	if b.Email != "anna@example.com" {
		t.Errorf("email not normalized: %q", b.Email)
	}
	if b.Phone != "+420777123456" {
		t.Errorf("phone not normalized: %q", b.Phone)
	}
	if b.Name != "Anna Ruiz" {
		t.Errorf("name not trimmed: %q", b.Name)
	}
}

func TestVoucherValidate(t *testing.T) {
	cash := domain.VoucherOrder{
		RecipientName:  "Marta",
		RecipientEmail: "marta@example.com",
		Type:           domain.VoucherCash,
		Amount:         "2000",
		PaymentMethod:  "transfer",
	}
	if err := cash.Validate(); err != nil {
		t.Fatalf("valid cash voucher rejected: %v", err)
	}

	cash.Amount = ""
	if err := cash.Validate(); err == nil {
		t.Fatal("cash voucher without amount accepted")
	}
	cash.Amount = "-5"
	if err := cash.Validate(); err == nil {
		t.Fatal("negative amount accepted")
	}

	svc := domain.VoucherOrder{
		RecipientName:  "Marta",
		RecipientEmail: "marta@example.com",
		Type:           domain.VoucherService,
		PaymentMethod:  "cash",
	}
	if err := svc.Validate(); err == nil {
		t.Fatal("service voucher without service accepted")
	}
	svc.Service = "massage"
	if err := svc.Validate(); err != nil {
		t.Fatalf("valid service voucher rejected: %v", err)
	}

	svc.Type = "points"
	if err := svc.Validate(); err == nil {
		t.Fatal("unknown voucher type accepted")
	}
}

func TestVoucherIdentityTuple(t *testing.T) {
	v := domain.VoucherOrder{RecipientEmail: "marta@example.com", Amount: "2000"}
	got := v.IdentityTuple()
	want := []string{"marta@example.com", "2000", ""}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tuple[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
