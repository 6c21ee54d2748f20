// Package handlers exposes the confirmation protocol's five routes. The two
// intake POSTs speak JSON; the confirmation endpoints render HTML because
// their audience is a browser following an email link.
package handlers

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/lumiere-atelier/salon-bookings/internal/domain"
	"github.com/lumiere-atelier/salon-bookings/internal/http/response"
	"github.com/lumiere-atelier/salon-bookings/internal/service"
	"github.com/lumiere-atelier/salon-bookings/pkg/logger"
)

type Handler struct {
	bookings  *service.Bookings
	vouchers  *service.Vouchers
	salonName string
}

func New(bookings *service.Bookings, vouchers *service.Vouchers, salonName string) *Handler {
	return &Handler{bookings: bookings, vouchers: vouchers, salonName: salonName}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/booking-request", h.createBooking)
	r.Get("/confirm-booking", h.renderConfirmBooking)
	r.Post("/confirm-booking", h.finalizeBooking)
	r.Post("/voucher-order", h.createVoucher)
	r.Get("/confirm-payment", h.confirmPayment)

	return r
}

func (h *Handler) createBooking(w http.ResponseWriter, r *http.Request) {
	var in domain.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}

	if _, err := h.bookings.Submit(r.Context(), &in); err != nil {
		h.writeServiceError(r, w, err)
		return
	}
	response.Success(w)
}

func (h *Handler) createVoucher(w http.ResponseWriter, r *http.Request) {
	var in domain.VoucherOrder
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}

	if _, err := h.vouchers.Submit(r.Context(), &in); err != nil {
		h.writeServiceError(r, w, err)
		return
	}
	response.Success(w)
}

func (h *Handler) renderConfirmBooking(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := bookingFromValues(q)
	key := q.Get("key")

	if !h.bookings.Verify(&req, key) {
		h.renderPage(w, linkErrorPage, http.StatusForbidden, map[string]any{"Salon": h.salonName})
		return
	}

	h.renderPage(w, confirmFormPage, http.StatusOK, map[string]any{
		"Salon": h.salonName,
		"Req":   req,
		"Key":   key,
	})
}

func (h *Handler) finalizeBooking(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		response.BadRequest(w, "invalid form")
		return
	}
	f := r.Form

	// The tag is verified against the echoed originals; finalDate and
	// finalTime stay outside the identity tuple.
	originalDate := f.Get("originalDate")
	if originalDate == "" {
		originalDate = f.Get("date")
	}
	originalTime := f.Get("originalTime")
	if originalTime == "" {
		originalTime = f.Get("time")
	}

	c := domain.BookingConfirmation{
		BookingRequest: domain.BookingRequest{
			Service: f.Get("service"),
			Package: f.Get("package"),
			Date:    originalDate,
			Time:    originalTime,
			Name:    f.Get("name"),
			Email:   f.Get("email"),
			Phone:   f.Get("phone"),
			Note:    f.Get("note"),
		},
		FinalDate: f.Get("finalDate"),
		FinalTime: f.Get("finalTime"),
		Key:       f.Get("key"),
	}

	if err := h.bookings.Confirm(r.Context(), &c); err != nil {
		h.writeServiceError(r, w, err)
		return
	}
	response.Success(w)
}

// confirmPayment is the voucher flow's one-shot confirmation: a valid GET
// dispatches immediately, there is no edit phase.
func (h *Handler) confirmPayment(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	order := domain.VoucherOrder{
		RecipientName:  q.Get("name"),
		RecipientEmail: q.Get("email"),
		RecipientPhone: q.Get("phone"),
		Message:        q.Get("message"),
		Type:           domain.VoucherType(q.Get("type")),
		Amount:         q.Get("amount"),
		Service:        q.Get("service"),
		Package:        q.Get("package"),
		PaymentMethod:  q.Get("payment"),
	}

	err := h.vouchers.ConfirmPayment(r.Context(), &order, q.Get("key"))
	switch {
	case err == nil:
		h.renderPage(w, paymentConfirmedPage, http.StatusOK, map[string]any{
			"Salon": h.salonName,
			"Name":  order.RecipientName,
		})
	case errors.Is(err, service.ErrInvalidToken):
		h.renderPage(w, linkErrorPage, http.StatusForbidden, map[string]any{"Salon": h.salonName})
	case errors.Is(err, service.ErrDispatchFailed):
		logger.ErrorContext(r.Context(), "voucher payment dispatch failed", "error", err)
		h.renderPage(w, dispatchErrorPage, http.StatusInternalServerError, map[string]any{"Salon": h.salonName})
	default:
		logger.ErrorContext(r.Context(), "voucher payment confirmation failed", "error", err)
		h.renderPage(w, dispatchErrorPage, http.StatusInternalServerError, map[string]any{"Salon": h.salonName})
	}
}

func (h *Handler) writeServiceError(r *http.Request, w http.ResponseWriter, err error) {
	var fieldErr *domain.FieldError
	switch {
	case errors.As(err, &fieldErr):
		response.BadRequest(w, fieldErr.Error())
	case errors.Is(err, service.ErrInvalidToken):
		response.Forbidden(w)
	case errors.Is(err, service.ErrDispatchFailed):
		logger.ErrorContext(r.Context(), "notification dispatch failed", "error", err)
		response.DispatchFailure(w)
	default:
		logger.ErrorContext(r.Context(), "request failed", "error", err)
		response.InternalError(w, "internal error")
	}
}

func (h *Handler) renderPage(w http.ResponseWriter, page *template.Template, status int, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := page.Execute(w, data); err != nil {
		logger.Error("failed to render page", "page", page.Name(), "error", err)
	}
}

func bookingFromValues(q url.Values) domain.BookingRequest {
	return domain.BookingRequest{
		Service: q.Get("service"),
		Package: q.Get("package"),
		Date:    q.Get("date"),
		Time:    q.Get("time"),
		Name:    q.Get("name"),
		Email:   q.Get("email"),
		Phone:   q.Get("phone"),
		Note:    q.Get("note"),
	}
}
