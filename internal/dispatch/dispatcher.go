package dispatch

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/HasSanK911/AssuredID-Scanner/internal/receipt"
	"github.com/HasSanK911/AssuredID-Scanner/pkg/interfaces"
	"github.com/HasSanK911/AssuredID-Scanner/pkg/logger"
	"github.com/HasSanK911/AssuredID-Scanner/pkg/money"
	"github.com/HasSanK911/AssuredID-Scanner/pkg/monitoring"
	"github.com/HasSanK911/AssuredID-Scanner/pkg/types"
)

// printerColumns is the character budget of one thermal printer line
const printerColumns = 32

// Options carries the delivery settings for a dispatcher
type Options struct {
	ShareTitle   string
	HeaderFontPx int
	BodyFontPx   int
	CodeWidth    int
	CodeHeight   int
}

// Dispatcher delivers a composed receipt to the user. The printer path is
// primary when a printer is configured; the share path is the fallback.
// Each request runs the chain Idle -> printer -> share -> done; only failure
// of both paths is reported as an overall failure.
type Dispatcher struct {
	printer  interfaces.ThermalPrinter
	share    interfaces.SharePresenter
	composer *receipt.Composer
	log      *logger.Logger
	metrics  *monitoring.MetricsCollector
	opts     Options
}

// NewDispatcher creates a dispatcher. printer may be nil when no printer
// collaborator is configured; metrics may be nil to disable recording.
func NewDispatcher(
	printer interfaces.ThermalPrinter,
	share interfaces.SharePresenter,
	composer *receipt.Composer,
	log *logger.Logger,
	metrics *monitoring.MetricsCollector,
	opts Options,
) *Dispatcher {
	return &Dispatcher{
		printer:  printer,
		share:    share,
		composer: composer,
		log:      log,
		metrics:  metrics,
		opts:     opts,
	}
}

// Dispatch delivers the receipt for the given order and metadata, reporting
// whether any path succeeded. Collaborator errors are absorbed here and
// converted into the fallback transition.
func (d *Dispatcher) Dispatch(ctx context.Context, order *types.Order, meta types.ReceiptMeta) types.DispatchResult {
	if d.printer != nil {
		if err := d.printOrder(order, meta); err != nil {
			d.recordAttempt(types.DispatchPathPrinter, false)
			d.log.WithComponent("dispatcher").WithError(err).
				WithField("receipt_id", meta.ReceiptID).
				Warn("Printer path failed, falling back to share")
		} else {
			d.recordAttempt(types.DispatchPathPrinter, true)
			d.log.Dispatch(ctx, types.DispatchPathPrinter, meta.ReceiptID, true, nil)
			return types.DispatchResult{Delivered: true, Path: types.DispatchPathPrinter}
		}
	}

	document := d.composer.ComposeBoxed(order, meta)
	if err := d.share.Share(ctx, document.Text(), d.opts.ShareTitle); err != nil {
		d.recordAttempt(types.DispatchPathShare, false)
		d.log.Dispatch(ctx, types.DispatchPathShare, meta.ReceiptID, false, map[string]interface{}{
			"error": err.Error(),
		})
		return types.DispatchResult{Delivered: false}
	}

	d.recordAttempt(types.DispatchPathShare, true)
	d.log.Dispatch(ctx, types.DispatchPathShare, meta.ReceiptID, true, nil)
	return types.DispatchResult{Delivered: true, Path: types.DispatchPathShare}
}

// printOrder drives the printer command sequence derived from the order and
// metadata. The first failing command aborts the sequence; partial prints on
// paper are accepted, but alignment is reset best-effort so a later print
// does not inherit a stale layout state.
func (d *Dispatcher) printOrder(order *types.Order, meta types.ReceiptMeta) (err error) {
	initialized := false
	defer func() {
		if err != nil && initialized {
			// Best-effort reset; the original error is the one that matters
			_ = d.printer.SetAlignment("left")
		}
	}()

	if err = d.printer.Init(); err != nil {
		return fmt.Errorf("printer init failed: %w", err)
	}
	initialized = true

	if err = d.printer.SetAlignment("center"); err != nil {
		return fmt.Errorf("failed to set header alignment: %w", err)
	}
	if err = d.printer.SetFontSize(d.opts.HeaderFontPx); err != nil {
		return fmt.Errorf("failed to set header font: %w", err)
	}

	document := d.composer.ComposePlain(order, meta)
	if len(document.Lines) > 0 {
		if err = d.printer.PrintText(document.Lines[0]); err != nil {
			return fmt.Errorf("failed to print title: %w", err)
		}
	}

	if err = d.printer.SetFontSize(d.opts.BodyFontPx); err != nil {
		return fmt.Errorf("failed to set body font: %w", err)
	}
	if err = d.printer.SetAlignment("left"); err != nil {
		return fmt.Errorf("failed to set body alignment: %w", err)
	}

	for _, line := range []string{
		"Receipt ID: " + meta.ReceiptID,
		"Date: " + meta.IssuedAt,
		"Patient: " + order.PatientName,
	} {
		if err = d.printer.PrintText(line); err != nil {
			return fmt.Errorf("failed to print header line: %w", err)
		}
	}

	if meta.ClaimNumber != "" {
		if err = d.printer.SetAlignment("center"); err != nil {
			return fmt.Errorf("failed to set claim alignment: %w", err)
		}
		if err = d.printer.PrintText("Claim No: " + meta.ClaimNumber); err != nil {
			return fmt.Errorf("failed to print claim number: %w", err)
		}
		if err = d.printer.PrintScannableCode(meta.ClaimNumber, d.opts.CodeWidth, d.opts.CodeHeight); err != nil {
			return fmt.Errorf("failed to print claim code: %w", err)
		}
		if err = d.printer.SetAlignment("left"); err != nil {
			return fmt.Errorf("failed to restore alignment: %w", err)
		}
	}

	if err = d.printer.PrintText("Items:"); err != nil {
		return fmt.Errorf("failed to print items header: %w", err)
	}
	for _, item := range order.Items {
		line := twoColumn(item.Name+" ("+item.Size+")", money.Format(item.Price, item.CurrencyCode))
		if err = d.printer.PrintText(line); err != nil {
			return fmt.Errorf("failed to print item line: %w", err)
		}
	}

	total := twoColumn("Total:", money.Format(order.TotalAmount, order.CurrencyCode))
	if err = d.printer.PrintText(total); err != nil {
		return fmt.Errorf("failed to print total: %w", err)
	}

	if err = d.printer.SetAlignment("center"); err != nil {
		return fmt.Errorf("failed to set footer alignment: %w", err)
	}
	if len(document.Lines) > 0 {
		if err = d.printer.PrintText(document.Lines[len(document.Lines)-1]); err != nil {
			return fmt.Errorf("failed to print footer: %w", err)
		}
	}
	if err = d.printer.SetAlignment("left"); err != nil {
		return fmt.Errorf("failed to reset alignment: %w", err)
	}

	if err = d.printer.Feed(); err != nil {
		return fmt.Errorf("failed to feed paper: %w", err)
	}
	if err = d.printer.Cut(); err != nil {
		return fmt.Errorf("failed to cut paper: %w", err)
	}

	return nil
}

func (d *Dispatcher) recordAttempt(path string, success bool) {
	if d.metrics != nil {
		d.metrics.RecordDispatchAttempt(path, success)
	}
}

// twoColumn lays left and right text at opposite edges of a printer line,
// right-aligning the second column within the fixed budget
func twoColumn(left, right string) string {
	gap := printerColumns - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
