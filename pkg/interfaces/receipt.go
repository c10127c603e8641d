package interfaces

import (
	"context"

	"github.com/HasSanK911/AssuredID-Scanner/pkg/types"
)

// BarcodeEncoder maps an arbitrary string to a visual bar-pattern string.
// The output is display-only and not a scannable symbology. Implementations
// must be pure: identical input yields byte-identical output, and empty
// input yields an empty string.
type BarcodeEncoder interface {
	Encode(text string) string
}

// SharePresenter hands a rendered receipt to the platform share surface.
// Success means the invocation completed, not that the user finished sharing.
type SharePresenter interface {
	Share(ctx context.Context, message, title string) error
}

// ThermalPrinter drives an attached line printer command by command.
// Each call may fail independently; callers abort the sequence on the
// first error.
type ThermalPrinter interface {
	Init() error
	SetAlignment(alignment string) error
	SetFontSize(px int) error
	PrintText(text string) error
	PrintScannableCode(data string, width, height int) error
	Feed() error
	Cut() error
}

// PatientLookup resolves an assured identifier to patient details
type PatientLookup interface {
	Lookup(ctx context.Context, assuredID string) (*types.Patient, error)
}

// CatalogProvider supplies the fixed list of selectable drugs
type CatalogProvider interface {
	List() []types.LineItem
	Get(id string) (types.LineItem, error)
}

// ReceiptDispatcher delivers a composed receipt through the configured
// output path, falling back from printer to share on failure
type ReceiptDispatcher interface {
	Dispatch(ctx context.Context, order *types.Order, meta types.ReceiptMeta) types.DispatchResult
}
