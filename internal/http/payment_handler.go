package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tutorschool/msms/internal/model"
	"github.com/tutorschool/msms/internal/service"
)

type PaymentHandler struct {
	svc *service.LedgerService
}

func NewPaymentHandler(svc *service.LedgerService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

func (h *PaymentHandler) StudentRoutes(r chi.Router) {
	r.Get("/{id}/balance", h.balance)
	r.Get("/{id}/invoices", h.invoices)
	r.Get("/{id}/invoices/{number}", h.invoiceDetails)
	r.Post("/{id}/invoices/{number}/transfers", h.recordTransfer)
	r.Delete("/{id}/invoices/{number}", h.voidInvoice)
}

type recordTransferRequest struct {
	Amount       int    `json:"amount"`
	VerifierID   int64  `json:"verifier_id"`
	DateReceived string `json:"date_received"`
}

func (h *PaymentHandler) recordTransfer(w http.ResponseWriter, r *http.Request) {
	studentID, invoiceNumber, ok := paymentParams(w, r)
	if !ok {
		return
	}

	var req recordTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	received, err := parseDate(req.DateReceived)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid date_received", Field: "date_received"})
		return
	}

	transfer, err := h.svc.RecordTransfer(r.Context(), studentID, invoiceNumber, req.Amount, req.VerifierID, received)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, transfer)
}

func (h *PaymentHandler) balance(w http.ResponseWriter, r *http.Request) {
	studentID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	owed, err := h.svc.Balance(r.Context(), studentID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"owed": owed})
}

type invoiceResponse struct {
	*model.Invoice
	ReferenceNumber string             `json:"reference_number"`
	Price           int                `json:"price"`
	AmountPaid      int                `json:"amount_paid"`
	State           model.InvoiceState `json:"state"`
	Outstanding     int                `json:"outstanding"`
}

func toInvoiceResponse(invoice *model.Invoice) *invoiceResponse {
	return &invoiceResponse{
		Invoice:         invoice,
		ReferenceNumber: invoice.ReferenceNumber(),
		Price:           invoice.Price(),
		AmountPaid:      invoice.AmountPaid(),
		State:           invoice.State(),
		Outstanding:     invoice.Outstanding(),
	}
}

func (h *PaymentHandler) invoices(w http.ResponseWriter, r *http.Request) {
	studentID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	invoices, err := h.svc.StudentInvoices(r.Context(), studentID)
	if err != nil {
		writeError(w, err)
		return
	}

	responses := make([]*invoiceResponse, 0, len(invoices))
	for _, invoice := range invoices {
		responses = append(responses, toInvoiceResponse(invoice))
	}

	writeJSON(w, http.StatusOK, responses)
}

func (h *PaymentHandler) invoiceDetails(w http.ResponseWriter, r *http.Request) {
	studentID, invoiceNumber, ok := paymentParams(w, r)
	if !ok {
		return
	}

	invoice, err := h.svc.InvoiceDetails(r.Context(), studentID, invoiceNumber)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toInvoiceResponse(invoice))
}

func (h *PaymentHandler) voidInvoice(w http.ResponseWriter, r *http.Request) {
	studentID, invoiceNumber, ok := paymentParams(w, r)
	if !ok {
		return
	}

	if err := h.svc.VoidInvoice(r.Context(), studentID, invoiceNumber); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PaymentHandler) allBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := h.svc.AllBalances(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, balances)
}

func paymentParams(w http.ResponseWriter, r *http.Request) (studentID int64, invoiceNumber int, ok bool) {
	studentID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, 0, false
	}

	invoiceNumber, err = strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil {
		http.Error(w, "invalid invoice number", http.StatusBadRequest)
		return 0, 0, false
	}

	return studentID, invoiceNumber, true
}
