package api

import (
	"errors"
	"net/http"

	"staybook/internal/domain"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type errorResponse struct {
	Error   string `json:"error"`
	Reason  string `json:"reason,omitempty"`
	MinStay int    `json:"min_stay,omitempty"`
}

// httpStatus maps domain errors to a status code and response body.
func httpStatus(err error) (int, errorResponse) {
	var conflict *domain.ConflictError
	switch {
	case errors.As(err, &conflict):
		return http.StatusConflict, errorResponse{Error: err.Error(), Reason: conflict.Reason, MinStay: conflict.MinStay}
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrGroupBookingDisabled):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrConcurrentModification):
		return http.StatusConflict, errorResponse{Error: err.Error()}
	default:
		return http.StatusInternalServerError, errorResponse{Error: "internal error"}
	}
}

func (s *HTTPServer) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	code, body := httpStatus(err)
	if code == http.StatusInternalServerError {
		s.log.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
	}
	writeJSON(w, code, body)
}

func grpcError(err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrGroupBookingDisabled):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
