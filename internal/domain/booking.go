package domain

// BookingRequest is a customer's appointment request. It is never stored:
// once signed, the confirmation link carries every field needed to re-render
// and re-verify it. The identity tuple is (Email, Date, Time); the remaining
// fields are decorative and may be edited without invalidating the link.
//
// The url tags drive confirmation-link query encoding.
type BookingRequest struct {
	Service string `json:"service" url:"service"`
	Package string `json:"packageName,omitempty" url:"package,omitempty"`
	Date    string `json:"date" url:"date"`
	Time    string `json:"time" url:"time"`
	Name    string `json:"name" url:"name"`
	Email   string `json:"email" url:"email"`
	Phone   string `json:"phone" url:"phone"`
	Note    string `json:"note,omitempty" url:"note,omitempty"`
}

// IdentityTuple returns the ordered fields the authentication tag is computed
// over. Only these bind the link to the transaction.
func (b *BookingRequest) IdentityTuple() []string {
	return []string{b.Email, b.Date, b.Time}
}

// BookingConfirmation is the finalize-phase payload: the owner's chosen
// date/time plus the echoed original identity fields and tag. Verification
// always runs against the originals, never the final values.
type BookingConfirmation struct {
	BookingRequest

	FinalDate string
	FinalTime string
	Key       string
}
