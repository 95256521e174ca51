package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/tutorschool/msms/internal/service"
)

type errorResponse struct {
	Error      string `json:"error"`
	Field      string `json:"field,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	// Указатель: ноль ("не умещается ни одного") тоже должен попасть в ответ
	MaxFitting *int `json:"max_fitting,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError переводит отказ сервиса в HTTP-статус и JSON-тело.
// Отказы пользовательские (4xx), всё остальное - 500.
func writeError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Error(), Field: validationErr.Field})
		return
	}

	var notFoundErr *service.NotFoundError
	if errors.As(err, &notFoundErr) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: notFoundErr.Error()})
		return
	}

	var overlapErr *service.OverlapError
	if errors.As(err, &overlapErr) {
		writeJSON(w, http.StatusConflict, errorResponse{Error: overlapErr.Error()})
		return
	}

	var unknownTermErr *service.UnknownTermError
	if errors.As(err, &unknownTermErr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: unknownTermErr.Error(), Suggestion: unknownTermErr.Suggestion})
		return
	}

	var outOfTermErr *service.OutOfTermError
	if errors.As(err, &outOfTermErr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: outOfTermErr.Error()})
		return
	}

	var capacityErr *service.CapacityError
	if errors.As(err, &capacityErr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: capacityErr.Error(), MaxFitting: &capacityErr.MaxFitting})
		return
	}

	switch {
	case errors.Is(err, service.ErrNoTerms),
		errors.Is(err, service.ErrAllTermsOutdated),
		errors.Is(err, service.ErrDateOrder),
		errors.Is(err, service.ErrFutureDate),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvoiceHasTransfers):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrConcurrency):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// parseDate принимает дату с временем (RFC3339) или просто дату
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
