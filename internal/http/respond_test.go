package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorschool/msms/internal/service"
)

func TestWriteErrorCapacity(t *testing.T) {
	// Ноль умещающихся занятий - тоже ответ, поле не должно пропадать
	rec := httptest.NewRecorder()
	writeError(rec, &service.CapacityError{Requested: 3, MaxFitting: 0})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body, "max_fitting")
	assert.Equal(t, float64(0), body["max_fitting"])
}

func TestWriteErrorStatuses(t *testing.T) {
	type testCase struct {
		name string
		err  error
		want int
	}

	tests := []testCase{
		{name: "Validation", err: &service.ValidationError{Field: "topic", Reason: "must not be blank"}, want: http.StatusBadRequest},
		{name: "NotFound", err: &service.NotFoundError{Entity: "invoice"}, want: http.StatusNotFound},
		{name: "Overlap", err: &service.OverlapError{With: "Autumn Term"}, want: http.StatusConflict},
		{name: "UnknownTerm", err: &service.UnknownTermError{Name: "Spring"}, want: http.StatusUnprocessableEntity},
		{name: "InvoiceHasTransfers", err: service.ErrInvoiceHasTransfers, want: http.StatusUnprocessableEntity},
		{name: "Concurrency", err: service.ErrConcurrency, want: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
