package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/lumiere-atelier/salon-bookings/internal/catalog"
	"github.com/lumiere-atelier/salon-bookings/internal/http/handlers"
	"github.com/lumiere-atelier/salon-bookings/internal/mailer"
	"github.com/lumiere-atelier/salon-bookings/internal/notify"
	"github.com/lumiere-atelier/salon-bookings/internal/service"
	"github.com/lumiere-atelier/salon-bookings/internal/signature"
	"github.com/lumiere-atelier/salon-bookings/pkg/events"
)

// ---------- Mocks ----------

type mockSender struct {
	mu      sync.Mutex
	sent    []mailer.Message
	sendErr error
}

func (m *mockSender) Send(_ context.Context, msg mailer.Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return "", m.sendErr
	}
	m.sent = append(m.sent, msg)
	return "mock-id", nil
}

func (m *mockSender) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = nil
}

func (m *mockSender) setErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendErr = err
}

func (m *mockSender) messages() []mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]mailer.Message, len(m.sent))
	copy(out, m.sent)
	return out
}

func (m *mockSender) byRecipient(email string) (mailer.Message, bool) {
	for _, msg := range m.messages() {
		if msg.ToEmail == email {
			return msg, true
		}
	}
	return mailer.Message{}, false
}

const ownerEmail = "owner@salon.example"

func newTestRouter(t *testing.T, sender mailer.Sender) chi.Router {
	t.Helper()

	signer, err := signature.NewSigner("test-secret")
	if err != nil {
		t.Fatal(err)
	}

	notifier := notify.New(sender, "Lumiere Atelier", "Petra", ownerEmail)
	cat := catalog.New("testdata/catalog.json")
	bus := events.NoopBus{}

	bookings := service.NewBookings(signer, notifier, cat, bus, "http://salon.test", "Lumiere Atelier", "Vodickova 12, Prague")
	vouchers := service.NewVouchers(signer, notifier, bus, "http://salon.test")

	r := chi.NewRouter()
	r.Mount("/", handlers.New(bookings, vouchers, "Lumiere Atelier").Routes())
	return r
}

var linkRe = regexp.MustCompile(`https?://\S+`)

func extractLink(t *testing.T, msg mailer.Message) *url.URL {
	t.Helper()
	raw := linkRe.FindString(msg.Text)
	if raw == "" {
		t.Fatalf("no link in message to %s:\n%s", msg.ToEmail, msg.Text)
	}
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("bad link %q: %v", raw, err)
	}
	return u
}

func postJSON(t *testing.T, r chi.Router, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postForm(t *testing.T, r chi.Router, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r chi.Router, uri string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, uri, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bookingBody() map[string]string {
	return map[string]string{
		"service":     "coloring",
		"packageName": "Full coloring",
		"date":        "2025-06-01",
		"time":        "10:00",
		"name":        "Anna Ruiz",
		"email":       "anna@example.com",
		"phone":       "+420 777 123 456",
		"note":        "first visit",
	}
}

// finalizeForm echoes the original identity fields from the issued link and
// adds the owner's chosen final date and time.
func finalizeForm(link *url.URL, finalDate, finalTime string) url.Values {
	q := link.Query()
	return url.Values{
		"service":      {q.Get("service")},
		"package":      {q.Get("package")},
		"originalDate": {q.Get("date")},
		"originalTime": {q.Get("time")},
		"name":         {q.Get("name")},
		"email":        {q.Get("email")},
		"phone":        {q.Get("phone")},
		"note":         {q.Get("note")},
		"key":          {q.Get("key")},
		"finalDate":    {finalDate},
		"finalTime":    {finalTime},
	}
}

// ---------- Tests ----------

func TestBookingFlowEndToEnd(t *testing.T) {
	sender := &mockSender{}
	r := newTestRouter(t, sender)

	// Intake
	w := postJSON(t, r, "/booking-request", bookingBody())
	if w.Code != http.StatusOK {
		t.Fatalf("intake status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"success":true`) {
		t.Fatalf("unexpected intake body: %s", w.Body.String())
	}

	msgs := sender.messages()
	if len(msgs) != 2 {
		t.Fatalf("intake should send 2 emails, sent %d", len(msgs))
	}
	ownerMsg, ok := sender.byRecipient(ownerEmail)
	if !ok {
		t.Fatal("owner not notified at intake")
	}
	customerMsg, _ := sender.byRecipient("anna@example.com")
	if linkRe.MatchString(customerMsg.Text) {
		t.Error("customer acknowledgement must not carry an actionable link")
	}

	link := extractLink(t, ownerMsg)
	if link.Path != "/confirm-booking" {
		t.Fatalf("link path = %q", link.Path)
	}
	if link.Query().Get("key") == "" {
		t.Fatal("link carries no authentication tag")
	}

	// Render phase
	w = get(r, link.RequestURI())
	if w.Code != http.StatusOK {
		t.Fatalf("render status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `name="key"`) || !strings.Contains(body, link.Query().Get("key")) {
		t.Error("form must re-embed the original tag")
	}
	if !strings.Contains(body, `name="originalDate" value="2025-06-01"`) {
		t.Error("form must re-embed the original date")
	}

	// Finalize with an edited date/time: authentication binds to the
	// originals, so this must succeed.
	sender.reset()
	w = postForm(t, r, "/confirm-booking", finalizeForm(link, "2025-06-02", "14:00"))
	if w.Code != http.StatusOK {
		t.Fatalf("finalize status = %d, body = %s", w.Code, w.Body.String())
	}

	msgs = sender.messages()
	if len(msgs) != 2 {
		t.Fatalf("finalize should send 2 emails, sent %d", len(msgs))
	}
	for _, msg := range msgs {
		if len(msg.Attachments) != 1 {
			t.Errorf("confirmed notice to %s is missing its calendar artifact", msg.ToEmail)
			continue
		}
		ical := string(msg.Attachments[0].Content)
		if !strings.Contains(ical, "DTSTART:20250602T140000") {
			t.Errorf("artifact for %s should use the final date/time:\n%s", msg.ToEmail, ical)
		}
	}

	ownerConfirmed, _ := sender.byRecipient(ownerEmail)
	if len(ownerConfirmed.Attachments) == 1 &&
		!strings.Contains(string(ownerConfirmed.Attachments[0].Content), "Client: Anna Ruiz") {
		t.Error("owner artifact should describe the client")
	}
}

func TestBookingIntakeValidation(t *testing.T) {
	sender := &mockSender{}
	r := newTestRouter(t, sender)

	for _, field := range []string{"service", "date", "time", "name", "email", "phone"} {
		body := bookingBody()
		delete(body, field)
		w := postJSON(t, r, "/booking-request", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("missing %s: status = %d, want 400", field, w.Code)
		}
	}
	if len(sender.messages()) != 0 {
		t.Error("invalid requests must not dispatch emails")
	}
}

func TestRenderRejectsTamperedLink(t *testing.T) {
	sender := &mockSender{}
	r := newTestRouter(t, sender)

	postJSON(t, r, "/booking-request", bookingBody())
	ownerMsg, _ := sender.byRecipient(ownerEmail)
	link := extractLink(t, ownerMsg)

	q := link.Query()
	q.Set("date", "2025-06-02") // identity field altered, tag now stale
	link.RawQuery = q.Encode()

	w := get(r, link.RequestURI())
	if w.Code != http.StatusForbidden {
		t.Fatalf("tampered link status = %d, want 403", w.Code)
	}
	if strings.Contains(w.Body.String(), "date") {
		t.Error("rejection page must not name the offending field")
	}
}

func TestFinalizeRejectsTamperedIdentity(t *testing.T) {
	sender := &mockSender{}
	r := newTestRouter(t, sender)

	postJSON(t, r, "/booking-request", bookingBody())
	ownerMsg, _ := sender.byRecipient(ownerEmail)
	link := extractLink(t, ownerMsg)

	sender.reset()
	form := finalizeForm(link, "2025-06-01", "10:00")
	form.Set("email", "attacker@example.com")

	w := postForm(t, r, "/confirm-booking", form)
	if w.Code != http.StatusForbidden {
		t.Fatalf("tampered identity status = %d, want 403", w.Code)
	}
	if len(sender.messages()) != 0 {
		t.Error("rejected finalize must not dispatch emails")
	}
}

func TestFinalizeIsRetryableAfterDispatchFailure(t *testing.T) {
	sender := &mockSender{}
	r := newTestRouter(t, sender)

	postJSON(t, r, "/booking-request", bookingBody())
	ownerMsg, _ := sender.byRecipient(ownerEmail)
	link := extractLink(t, ownerMsg)
	form := finalizeForm(link, "2025-06-02", "14:00")

	sender.setErr(errors.New("mail provider down"))
	w := postForm(t, r, "/confirm-booking", form)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("dispatch failure status = %d, want 500", w.Code)
	}

	// Nothing was consumed: the identical call succeeds once delivery recovers.
	sender.setErr(nil)
	sender.reset()
	w = postForm(t, r, "/confirm-booking", form)
	if w.Code != http.StatusOK {
		t.Fatalf("retry status = %d, want 200", w.Code)
	}
	if len(sender.messages()) != 2 {
		t.Fatalf("retry should send 2 emails, sent %d", len(sender.messages()))
	}
}

func TestVoucherFlowAndAmountBinding(t *testing.T) {
	sender := &mockSender{}
	r := newTestRouter(t, sender)

	w := postJSON(t, r, "/voucher-order", map[string]string{
		"recipientName":  "Marta Novak",
		"recipientEmail": "marta@example.com",
		"voucherType":    "cash",
		"amount":         "2000",
		"paymentMethod":  "transfer",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("voucher intake status = %d, body = %s", w.Code, w.Body.String())
	}

	ownerMsg, ok := sender.byRecipient(ownerEmail)
	if !ok {
		t.Fatal("owner not notified of voucher order")
	}
	link := extractLink(t, ownerMsg)
	if link.Path != "/confirm-payment" {
		t.Fatalf("link path = %q", link.Path)
	}

	// Substituting the amount must invalidate the tag.
	q := link.Query()
	q.Set("amount", "3000")
	tampered := *link
	tampered.RawQuery = q.Encode()

	sender.reset()
	w = get(r, tampered.RequestURI())
	if w.Code != http.StatusForbidden {
		t.Fatalf("tampered amount status = %d, want 403", w.Code)
	}
	if len(sender.messages()) != 0 {
		t.Error("rejected payment confirmation must not dispatch emails")
	}

	// The untampered link settles the voucher in one step.
	w = get(r, link.RequestURI())
	if w.Code != http.StatusOK {
		t.Fatalf("payment confirmation status = %d", w.Code)
	}
	if len(sender.messages()) != 2 {
		t.Fatalf("payment confirmation should send 2 emails, sent %d", len(sender.messages()))
	}
	if _, ok := sender.byRecipient("marta@example.com"); !ok {
		t.Error("recipient not notified of settled voucher")
	}
}

func TestVoucherValidation(t *testing.T) {
	sender := &mockSender{}
	r := newTestRouter(t, sender)

	cases := []map[string]string{
		{ // cash without amount
			"recipientName": "Marta", "recipientEmail": "marta@example.com",
			"voucherType": "cash", "paymentMethod": "transfer",
		},
		{ // service type without service
			"recipientName": "Marta", "recipientEmail": "marta@example.com",
			"voucherType": "service", "paymentMethod": "cash",
		},
		{ // unknown type
			"recipientName": "Marta", "recipientEmail": "marta@example.com",
			"voucherType": "points", "amount": "100", "paymentMethod": "cash",
		},
	}
	for i, body := range cases {
		if w := postJSON(t, r, "/voucher-order", body); w.Code != http.StatusBadRequest {
			t.Errorf("case %d: status = %d, want 400", i, w.Code)
		}
	}
}

func TestConfirmPaymentDispatchFailure(t *testing.T) {
	sender := &mockSender{}
	r := newTestRouter(t, sender)

	postJSON(t, r, "/voucher-order", map[string]string{
		"recipientName":  "Marta Novak",
		"recipientEmail": "marta@example.com",
		"voucherType":    "cash",
		"amount":         "2000",
		"paymentMethod":  "transfer",
	})
	ownerMsg, _ := sender.byRecipient(ownerEmail)
	link := extractLink(t, ownerMsg)

	sender.setErr(errors.New("mail provider down"))
	w := get(r, link.RequestURI())
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("dispatch failure status = %d, want 500", w.Code)
	}

	sender.setErr(nil)
	sender.reset()
	if w := get(r, link.RequestURI()); w.Code != http.StatusOK {
		t.Fatalf("retry status = %d, want 200", w.Code)
	}
}
