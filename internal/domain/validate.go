package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// FieldError reports a missing or malformed request field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func missing(field string) error {
	return &FieldError{Field: field, Reason: "is required"}
}

// Normalize trims every field and canonicalizes email and phone before the
// request is signed. Signing happens over normalized values so that cosmetic
// whitespace differences cannot produce distinct tags.
func (b *BookingRequest) Normalize() {
	b.Service = strings.TrimSpace(b.Service)
	b.Package = strings.TrimSpace(b.Package)
	b.Date = strings.TrimSpace(b.Date)
	b.Time = strings.TrimSpace(b.Time)
	b.Name = strings.TrimSpace(b.Name)
	b.Email = NormalizeEmail(b.Email)
	b.Phone = NormalizePhone(b.Phone)
	b.Note = strings.TrimSpace(b.Note)
}

func (b *BookingRequest) Validate() error {
	switch {
	case b.Service == "":
		return missing("service")
	case b.Date == "":
		return missing("date")
	case b.Time == "":
		return missing("time")
	case b.Name == "":
		return missing("name")
	case b.Email == "":
		return missing("email")
	case b.Phone == "":
		return missing("phone")
	}
	if !IsValidEmail(b.Email) {
		return &FieldError{Field: "email", Reason: "is not a valid address"}
	}
	if _, err := ParseDateTime(b.Date, b.Time); err != nil {
		return &FieldError{Field: "date/time", Reason: "must be YYYY-MM-DD and HH:MM"}
	}
	return nil
}

func (v *VoucherOrder) Normalize() {
	v.RecipientName = strings.TrimSpace(v.RecipientName)
	v.RecipientEmail = NormalizeEmail(v.RecipientEmail)
	v.RecipientPhone = NormalizePhone(v.RecipientPhone)
	v.Message = strings.TrimSpace(v.Message)
	v.Amount = strings.TrimSpace(v.Amount)
	v.Service = strings.TrimSpace(v.Service)
	v.Package = strings.TrimSpace(v.Package)
	v.PaymentMethod = strings.TrimSpace(v.PaymentMethod)
}

func (v *VoucherOrder) Validate() error {
	switch {
	case v.RecipientName == "":
		return missing("recipientName")
	case v.RecipientEmail == "":
		return missing("recipientEmail")
	case v.PaymentMethod == "":
		return missing("paymentMethod")
	}
	if !IsValidEmail(v.RecipientEmail) {
		return &FieldError{Field: "recipientEmail", Reason: "is not a valid address"}
	}
	if _, ok := ParseVoucherType(string(v.Type)); !ok {
		return &FieldError{Field: "voucherType", Reason: "must be 'cash' or 'service'"}
	}
	switch v.Type {
	case VoucherCash:
		if v.Amount == "" {
			return missing("amount")
		}
		if n, err := strconv.Atoi(v.Amount); err != nil || n <= 0 {
			return &FieldError{Field: "amount", Reason: "must be a positive number"}
		}
	case VoucherService:
		if v.Service == "" {
			return missing("service")
		}
	}
	return nil
}

// ParseDateTime combines a YYYY-MM-DD date and HH:MM time into a local
// time.Time, the form both fields travel in throughout the link.
func ParseDateTime(date, tm string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+tm, time.Local)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone keeps a leading + and digits, dropping separators.
func NormalizePhone(phone string) string {
	cleaned := strings.TrimSpace(phone)
	var result strings.Builder
	for i, r := range cleaned {
		if i == 0 && r == '+' {
			result.WriteRune(r)
		} else if unicode.IsDigit(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}

func IsValidEmail(email string) bool {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return false
	}
	parts := strings.Split(normalized, "@")
	if len(parts) != 2 {
		return false
	}
	local, dom := parts[0], parts[1]
	return len(local) > 0 && len(dom) > 2 && strings.Contains(dom, ".")
}
