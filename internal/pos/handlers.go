package pos

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/HasSanK911/AssuredID-Scanner/pkg/types"
)

// Handlers provides HTTP handlers for the POS receipt workflow
type Handlers struct {
	service *Service
}

// NewHandlers creates new POS workflow handlers
func NewHandlers(service *Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// RegisterRoutes registers all POS workflow routes
func (h *Handlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/lookup", h.LookupPatient).Methods("POST")
	router.HandleFunc("/catalog", h.GetCatalog).Methods("GET")
	router.HandleFunc("/receipts/preview", h.PreviewReceipt).Methods("POST")
	router.HandleFunc("/receipts/print", h.PrintReceipt).Methods("POST")
	router.HandleFunc("/selftest", h.SelfTest).Methods("POST")
}

type lookupRequest struct {
	AssuredID string `json:"assured_id"`
}

type orderRequest struct {
	PatientName string   `json:"patient_name"`
	DrugIDs     []string `json:"drug_ids"`
}

type previewResponse struct {
	Meta     types.ReceiptMeta `json:"meta"`
	Document []string          `json:"document"`
}

type printResponse struct {
	Delivered bool     `json:"delivered"`
	Path      string   `json:"path,omitempty"`
	Document  []string `json:"document"`
}

// LookupPatient handles assured-ID lookups
func (h *Handlers) LookupPatient(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	patient, err := h.service.LookupPatient(r.Context(), req.AssuredID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, patient)
}

// GetCatalog handles catalog listing
func (h *Handlers) GetCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Catalog())
}

// PreviewReceipt renders a receipt without dispatching it
func (h *Handlers) PreviewReceipt(w http.ResponseWriter, r *http.Request) {
	order, ok := h.decodeOrder(w, r)
	if !ok {
		return
	}

	document, meta := h.service.PreviewReceipt(order)

	writeJSON(w, http.StatusOK, previewResponse{
		Meta:     meta,
		Document: document.Lines,
	})
}

// PrintReceipt renders and delivers a receipt
func (h *Handlers) PrintReceipt(w http.ResponseWriter, r *http.Request) {
	order, ok := h.decodeOrder(w, r)
	if !ok {
		return
	}

	result, document := h.service.PrintReceipt(r.Context(), order)

	status := http.StatusOK
	if !result.Delivered {
		status = http.StatusBadGateway
	}

	writeJSON(w, status, printResponse{
		Delivered: result.Delivered,
		Path:      result.Path,
		Document:  document.Lines,
	})
}

// SelfTest runs the receipt delivery diagnostics
func (h *Handlers) SelfTest(w http.ResponseWriter, r *http.Request) {
	result := h.service.SelfTest(r.Context())

	status := http.StatusOK
	if !result.Delivered {
		status = http.StatusBadGateway
	}

	writeJSON(w, status, result)
}

// decodeOrder reads and validates an order request body
func (h *Handlers) decodeOrder(w http.ResponseWriter, r *http.Request) (*types.Order, bool) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil, false
	}

	order, err := h.service.BuildOrder(req.PatientName, req.DrugIDs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	return order, true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// RequestIDMiddleware tags every request with a correlation ID
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", requestID)
		ctx := context.WithValue(r.Context(), "request_id", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
