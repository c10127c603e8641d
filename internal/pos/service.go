package pos

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/HasSanK911/AssuredID-Scanner/internal/receipt"
	"github.com/HasSanK911/AssuredID-Scanner/pkg/interfaces"
	"github.com/HasSanK911/AssuredID-Scanner/pkg/logger"
	"github.com/HasSanK911/AssuredID-Scanner/pkg/monitoring"
	"github.com/HasSanK911/AssuredID-Scanner/pkg/types"
)

// Service implements the point-of-sale receipt workflow: look up the
// patient, assemble an order from catalog selections, render the receipt
// and hand it to the dispatcher. All state is request-scoped; nothing
// survives across requests.
type Service struct {
	catalog    interfaces.CatalogProvider
	lookup     interfaces.PatientLookup
	composer   *receipt.Composer
	dispatcher interfaces.ReceiptDispatcher
	ids        *receipt.IDSource
	log        *logger.Logger
	metrics    *monitoring.MetricsCollector
}

// NewService creates a new POS workflow service
func NewService(
	catalog interfaces.CatalogProvider,
	lookup interfaces.PatientLookup,
	composer *receipt.Composer,
	dispatcher interfaces.ReceiptDispatcher,
	ids *receipt.IDSource,
	log *logger.Logger,
	metrics *monitoring.MetricsCollector,
) *Service {
	return &Service{
		catalog:    catalog,
		lookup:     lookup,
		composer:   composer,
		dispatcher: dispatcher,
		ids:        ids,
		log:        log,
		metrics:    metrics,
	}
}

// LookupPatient resolves an assured identifier to patient details
func (s *Service) LookupPatient(ctx context.Context, assuredID string) (*types.Patient, error) {
	patient, err := s.lookup.Lookup(ctx, assuredID)
	if s.metrics != nil {
		s.metrics.RecordLookup(err == nil)
	}
	if err != nil {
		return nil, fmt.Errorf("patient lookup failed: %w", err)
	}

	return patient, nil
}

// Catalog returns the fixed list of selectable drugs
func (s *Service) Catalog() []types.LineItem {
	return s.catalog.List()
}

// BuildOrder assembles an order from a drug selection. The selection must
// be non-empty and all items must share one currency; the order total is
// the sum of the selected item prices.
func (s *Service) BuildOrder(patientName string, drugIDs []string) (*types.Order, error) {
	if patientName == "" {
		return nil, fmt.Errorf("patient name is required")
	}
	if len(drugIDs) == 0 {
		return nil, fmt.Errorf("at least one drug must be selected")
	}

	items := make([]types.LineItem, 0, len(drugIDs))
	total := decimal.Zero
	currency := ""

	for _, id := range drugIDs {
		item, err := s.catalog.Get(id)
		if err != nil {
			return nil, fmt.Errorf("invalid selection: %w", err)
		}

		if currency == "" {
			currency = item.CurrencyCode
		} else if item.CurrencyCode != currency {
			return nil, fmt.Errorf("mixed currencies in one order: %s and %s", currency, item.CurrencyCode)
		}

		items = append(items, item)
		total = total.Add(item.Price)
	}

	return &types.Order{
		PatientName:  patientName,
		Items:        items,
		TotalAmount:  total,
		CurrencyCode: currency,
	}, nil
}

// PreviewReceipt renders the boxed receipt form without dispatching it
func (s *Service) PreviewReceipt(order *types.Order) (types.Document, types.ReceiptMeta) {
	meta := s.ids.NewMeta(true)
	document := s.renderBoxed(order, meta)
	return document, meta
}

// PrintReceipt renders and delivers the receipt for an order. The returned
// document is the boxed form for on-screen display regardless of which
// delivery path succeeded.
func (s *Service) PrintReceipt(ctx context.Context, order *types.Order) (types.DispatchResult, types.Document) {
	meta := s.ids.NewMeta(true)
	result := s.dispatcher.Dispatch(ctx, order, meta)
	document := s.renderBoxed(order, meta)

	s.log.WithComponent("pos").WithFields(map[string]interface{}{
		"receipt_id": meta.ReceiptID,
		"delivered":  result.Delivered,
		"path":       result.Path,
	}).Info("Print request completed")

	return result, document
}

// SelfTest runs a fixed test order through the full delivery chain, used
// by the kiosk diagnostics screen
func (s *Service) SelfTest(ctx context.Context) types.DispatchResult {
	order := &types.Order{
		PatientName: "Test Patient",
		Items: []types.LineItem{
			{Name: "Test Drug 1", Size: "100mg", Price: decimal.RequireFromString("25.99"), CurrencyCode: "USD"},
			{Name: "Test Drug 2", Size: "50mg", Price: decimal.RequireFromString("15.50"), CurrencyCode: "USD"},
		},
		TotalAmount:  decimal.RequireFromString("41.49"),
		CurrencyCode: "USD",
	}

	result, _ := s.PrintReceipt(ctx, order)
	return result
}

// renderBoxed composes the on-screen document form, recording render metrics
// when a collector is configured
func (s *Service) renderBoxed(order *types.Order, meta types.ReceiptMeta) types.Document {
	start := time.Now()
	document := s.composer.ComposeBoxed(order, meta)
	if s.metrics != nil {
		s.metrics.RecordReceiptRender("boxed", time.Since(start))
	}
	return document
}
