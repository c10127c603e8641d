package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LineItem represents one selected drug on an order
type LineItem struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Size         string          `json:"size"`
	Price        decimal.Decimal `json:"price"`
	CurrencyCode string          `json:"currency_code"`
}

// Order represents an in-progress purchase: patient, selected items, total.
// TotalAmount is supplied pre-summed by the assembling layer and rendered
// verbatim; CurrencyCode is the single currency context for the whole order.
type Order struct {
	PatientName  string          `json:"patient_name"`
	Items        []LineItem      `json:"items"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	CurrencyCode string          `json:"currency_code"`
}

// ReceiptMeta holds the per-render receipt identifiers. ReceiptID and
// ClaimNumber are generated once per order at render time and are opaque;
// IssuedAt is a presentation-only timestamp string embedded verbatim.
type ReceiptMeta struct {
	ReceiptID   string `json:"receipt_id"`
	ClaimNumber string `json:"claim_number,omitempty"`
	IssuedAt    string `json:"issued_at"`
}

// Document is the rendered textual receipt, one entry per output line
type Document struct {
	Lines []string `json:"lines"`
}

// Text returns the document as a single newline-joined string
func (d Document) Text() string {
	return strings.Join(d.Lines, "\n")
}

// Patient represents the payload returned by the assured-ID lookup
type Patient struct {
	Name        string `json:"name"`
	ClaimStatus string `json:"claim_status"`
}

// DispatchResult reports how a receipt delivery attempt ended
type DispatchResult struct {
	Delivered bool   `json:"delivered"`
	Path      string `json:"path,omitempty"`
}

// Dispatch path values
const (
	DispatchPathPrinter = "printer"
	DispatchPathShare   = "share"
)
