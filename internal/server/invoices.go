package server

import (
	"encoding/json"
	"net/http"

	"github.com/digirix/praxis/internal/services/invoice"
)

// createInvoiceBody is the JSON body accepted by POST /finance/invoices.
// Totals are never accepted from the client.
type createInvoiceBody struct {
	InvoiceNumber  string  `json:"invoiceNumber"`
	TaskID         *int    `json:"taskId"`
	ServiceRate    float64 `json:"serviceRate"`
	Currency       string  `json:"currency"`
	DiscountAmount float64 `json:"discountAmount"`
	TaxPercent     float64 `json:"taxPercent"`
	IssuedAt       *string `json:"issuedAt"`
}

// updateInvoiceBody is the JSON body accepted by PUT /finance/invoices/{id}
type updateInvoiceBody struct {
	ServiceRate    *float64 `json:"serviceRate"`
	Currency       *string  `json:"currency"`
	DiscountAmount *float64 `json:"discountAmount"`
	TaxPercent     *float64 `json:"taxPercent"`
	IssuedAt       *string  `json:"issuedAt"`
}

func (s *Server) handleListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := s.invoices.ListInvoices(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	payload := make([]invoicePayload, 0, len(invoices))
	for _, inv := range invoices {
		payload = append(payload, toInvoicePayload(inv))
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleGetInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorEnvelope{Error: errorBody{Message: "invalid invoice ID"}})
		return
	}

	inv, err := s.invoices.GetInvoice(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toInvoicePayload(inv))
}

func (s *Server) handleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	var body createInvoiceBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{Message: "invalid JSON body"}})
		return
	}

	req := invoice.CreateInvoiceRequest{
		InvoiceNumber:  body.InvoiceNumber,
		TaskID:         body.TaskID,
		ServiceRate:    body.ServiceRate,
		Currency:       body.Currency,
		DiscountAmount: body.DiscountAmount,
		TaxPercent:     body.TaxPercent,
	}

	var err error
	if req.IssuedAt, err = parseDatePtr(body.IssuedAt); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorEnvelope{Error: errorBody{Message: err.Error(), Field: "issuedAt"}})
		return
	}

	created, err := s.invoices.CreateInvoice(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toInvoicePayload(created))
}

func (s *Server) handleUpdateInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorEnvelope{Error: errorBody{Message: "invalid invoice ID"}})
		return
	}

	var body updateInvoiceBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{Message: "invalid JSON body"}})
		return
	}

	req := invoice.UpdateInvoiceRequest{
		InvoiceID:      id,
		ServiceRate:    body.ServiceRate,
		Currency:       body.Currency,
		DiscountAmount: body.DiscountAmount,
		TaxPercent:     body.TaxPercent,
	}

	if body.IssuedAt != nil {
		issued, err := parseDatePtr(body.IssuedAt)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, errorEnvelope{Error: errorBody{Message: err.Error(), Field: "issuedAt"}})
			return
		}
		req.IssuedAt = &issued
	}

	updated, err := s.invoices.UpdateInvoice(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toInvoicePayload(updated))
}
