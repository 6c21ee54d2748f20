package events

import "time"

// Event subjects
const (
	BookingRequested = "booking.requested"
	BookingConfirmed = "booking.confirmed"
	VoucherOrdered   = "voucher.ordered"
	VoucherPaid      = "voucher.paid"
)

type BookingRequestedEvent struct {
	Service     string    `json:"service"`
	Package     string    `json:"package,omitempty"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	ClientName  string    `json:"client_name"`
	ClientEmail string    `json:"client_email"`
	RequestedAt time.Time `json:"requested_at"`
}

type BookingConfirmedEvent struct {
	Service     string    `json:"service"`
	FinalDate   string    `json:"final_date"`
	FinalTime   string    `json:"final_time"`
	ClientEmail string    `json:"client_email"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

type VoucherOrderedEvent struct {
	RecipientEmail string    `json:"recipient_email"`
	Type           string    `json:"type"`
	Amount         string    `json:"amount,omitempty"`
	Service        string    `json:"service,omitempty"`
	PaymentMethod  string    `json:"payment_method"`
	OrderedAt      time.Time `json:"ordered_at"`
}

type VoucherPaidEvent struct {
	RecipientEmail string    `json:"recipient_email"`
	Type           string    `json:"type"`
	Amount         string    `json:"amount,omitempty"`
	Service        string    `json:"service,omitempty"`
	PaidAt         time.Time `json:"paid_at"`
}
