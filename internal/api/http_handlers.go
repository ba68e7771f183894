package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"staybook/internal/domain"
	"staybook/internal/export"
	"staybook/internal/models"
	"staybook/internal/payment"
)

const (
	modeInquiry = "inquiry"
	modeBook    = "book"

	maxBodyBytes    = 64 << 10
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func (s *HTTPServer) handleUnits(w http.ResponseWriter, r *http.Request) {
	units, err := s.svc.Availability.ListUnits(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"units": units})
}

func (s *HTTPServer) handleAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	unitID, err := intParam(q, "unit_id", 0)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if unitID <= 0 {
		s.writeServiceError(w, r, domain.NewValidationError("unit_id", "is required"))
		return
	}
	checkIn, checkOut, err := stayParams(q)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	guests, err := intParam(q, "guests", 1)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	children, err := intParam(q, "children", 0)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	res, err := s.svc.Availability.Quote(r.Context(), models.AvailabilityQuery{
		UnitID:   unitID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   int(guests),
		Children: int(children),
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *HTTPServer) handleGroupAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	checkIn, checkOut, err := stayParams(q)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	guests, err := intParam(q, "guests", 0)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	option, err := s.svc.Groups.Allocate(r.Context(), checkIn, checkOut, int(guests))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"option": option})
}

type createReservationRequest struct {
	Mode       string     `json:"mode"`
	Group      bool       `json:"group"`
	UnitID     int64      `json:"unit_id"`
	CheckIn    models.Day `json:"check_in"`
	CheckOut   models.Day `json:"check_out"`
	GuestName  string     `json:"guest_name"`
	GuestEmail string     `json:"guest_email"`
	GuestPhone string     `json:"guest_phone"`
	Guests     int        `json:"guests"`
	Children   int        `json:"children"`
	Notes      string     `json:"notes"`
}

type createReservationResponse struct {
	Reservations []*models.Reservation  `json:"reservations"`
	Checkout     *domain.CheckoutResult `json:"checkout,omitempty"`
}

// handleCreateReservation creates an inquiry, or pending reservations plus a
// payment session when mode is "book".
func (s *HTTPServer) handleCreateReservation(w http.ResponseWriter, r *http.Request) {
	var body createReservationRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	mode := strings.ToLower(strings.TrimSpace(body.Mode))
	if mode == "" {
		mode = modeBook
	}

	var (
		created []*models.Reservation
		err     error
	)
	switch {
	case mode == modeInquiry && body.Group:
		err = domain.NewValidationError("mode", "group requests can only be booked")
	case mode == modeInquiry:
		var res *models.Reservation
		res, err = s.svc.Reservations.CreateInquiry(r.Context(), body.single())
		if err == nil {
			created = []*models.Reservation{res}
		}
	case mode == modeBook && body.Group:
		created, err = s.svc.Reservations.CreateGroup(r.Context(), body.group())
	case mode == modeBook:
		var res *models.Reservation
		res, err = s.svc.Reservations.CreatePending(r.Context(), body.single())
		if err == nil {
			created = []*models.Reservation{res}
		}
	default:
		err = domain.NewValidationError("mode", "must be one of inquiry book")
	}
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	resp := createReservationResponse{Reservations: created}
	if mode == modeBook {
		checkout, err := s.svc.Payments.StartCheckout(r.Context(), created, s.svc.SuccessURL, s.svc.CancelURL)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		resp.Checkout = checkout
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (b createReservationRequest) single() models.ReservationRequest {
	return models.ReservationRequest{
		UnitID:     b.UnitID,
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		GuestName:  strings.TrimSpace(b.GuestName),
		GuestEmail: strings.TrimSpace(b.GuestEmail),
		GuestPhone: strings.TrimSpace(b.GuestPhone),
		Guests:     b.Guests,
		Children:   b.Children,
		Source:     models.SourceAPI,
		Notes:      b.Notes,
	}
}

func (b createReservationRequest) group() models.GroupReservationRequest {
	return models.GroupReservationRequest{
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		GuestName:  strings.TrimSpace(b.GuestName),
		GuestEmail: strings.TrimSpace(b.GuestEmail),
		GuestPhone: strings.TrimSpace(b.GuestPhone),
		Guests:     b.Guests + b.Children,
		Source:     models.SourceAPI,
		Notes:      b.Notes,
	}
}

func (s *HTTPServer) handleGetReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	res, err := s.svc.Reservations.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	resp := map[string]any{"reservation": res}
	if res.IsGroup() {
		group, err := s.svc.Reservations.ListGroup(r.Context(), res.GroupReference)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		resp["group"] = group
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *HTTPServer) handleCancelReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	cancelled, err := s.svc.Reservations.Cancel(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reservations": cancelled})
}

func (s *HTTPServer) handleCompleteReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	res, err := s.svc.Reservations.Complete(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reservation": res})
}

func (s *HTTPServer) handleRefunds(w http.ResponseWriter, r *http.Request) {
	refunds, err := s.svc.Reservations.ListRefundRequired(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") != "xlsx" {
		writeJSON(w, http.StatusOK, map[string]any{"reservations": refunds})
		return
	}

	units, err := s.svc.Availability.ListUnits(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	names := make(map[int64]string, len(units))
	for _, u := range units {
		names[u.ID] = u.Name
	}

	now := time.Now()
	var buf bytes.Buffer
	if err := export.WriteRefundReport(&buf, refunds, names, now); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="refunds-%s.xlsx"`, now.Format("20060102")))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// handleWebhook acknowledges everything except bad signatures (400) and
// failures the processor should redeliver (500).
func (s *HTTPServer) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if s.svc.Webhooks == nil || s.svc.Reconciler == nil {
		writeError(w, http.StatusNotFound, "webhooks are not configured")
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	event, err := s.svc.Webhooks.Parse(payload, r.Header.Get("Stripe-Signature"))
	switch {
	case errors.Is(err, payment.ErrInvalidSignature):
		s.log.Warn().Err(err).Msg("Webhook rejected")
		writeError(w, http.StatusBadRequest, "invalid signature")
		return
	case errors.Is(err, payment.ErrUnhandledEvent):
		s.log.Debug().Str("event_id", event.ID).Err(err).Msg("Webhook ignored")
		writeJSON(w, http.StatusOK, map[string]string{"outcome": string(domain.OutcomeIgnored)})
		return
	case err != nil:
		s.log.Warn().Err(err).Msg("Malformed webhook acknowledged")
		writeJSON(w, http.StatusOK, map[string]string{"outcome": string(domain.OutcomeIgnored)})
		return
	}

	outcome, err := s.svc.Reconciler.HandleEvent(r.Context(), event)
	if err != nil {
		s.log.Error().Err(err).Str("event_id", event.ID).Msg("Webhook processing failed, awaiting redelivery")
		writeError(w, http.StatusInternalServerError, "processing failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"outcome": string(outcome)})
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("id", "must be a positive integer")
	}
	return id, nil
}

func stayParams(q url.Values) (models.Day, models.Day, error) {
	checkIn, err := dayParam(q, "check_in")
	if err != nil {
		return 0, 0, err
	}
	checkOut, err := dayParam(q, "check_out")
	if err != nil {
		return 0, 0, err
	}
	return checkIn, checkOut, nil
}

func dayParam(q url.Values, name string) (models.Day, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return 0, domain.NewValidationError(name, "is required")
	}
	d, err := models.ParseDay(raw)
	if err != nil {
		return 0, domain.NewValidationError(name, err.Error())
	}
	return d, nil
}

func intParam(q url.Values, name string, def int64) (int64, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer")
	}
	return v, nil
}
