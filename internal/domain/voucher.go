package domain

type VoucherType string

const (
	VoucherCash    VoucherType = "cash"
	VoucherService VoucherType = "service"
)

func ParseVoucherType(s string) (VoucherType, bool) {
	switch VoucherType(s) {
	case VoucherCash, VoucherService:
		return VoucherType(s), true
	default:
		return "", false
	}
}

// VoucherOrder is a gift-voucher purchase request. Like bookings it lives only
// inside its signed link. The identity tuple is (RecipientEmail, Amount-or-"",
// Service-or-"").
type VoucherOrder struct {
	RecipientName  string      `json:"recipientName" url:"name"`
	RecipientEmail string      `json:"recipientEmail" url:"email"`
	RecipientPhone string      `json:"recipientPhone,omitempty" url:"phone,omitempty"`
	Message        string      `json:"message,omitempty" url:"message,omitempty"`
	Type           VoucherType `json:"voucherType" url:"type"`
	Amount         string      `json:"amount,omitempty" url:"amount,omitempty"`
	Service        string      `json:"service,omitempty" url:"service,omitempty"`
	Package        string      `json:"packageName,omitempty" url:"package,omitempty"`
	PaymentMethod  string      `json:"paymentMethod" url:"payment,omitempty"`
}

func (v *VoucherOrder) IdentityTuple() []string {
	return []string{v.RecipientEmail, v.Amount, v.Service}
}
