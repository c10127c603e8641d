package share

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// WriterPresenter implements the share surface against an io.Writer. On the
// kiosk build the writer is the bridge to the platform share sheet; in
// development it is stdout. Success means the write completed, not that the
// user finished a share action.
type WriterPresenter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterPresenter creates a share presenter writing to w
func NewWriterPresenter(w io.Writer) *WriterPresenter {
	return &WriterPresenter{w: w}
}

// Share hands the message to the share surface as a single payload
func (p *WriterPresenter) Share(ctx context.Context, message, title string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("share cancelled: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := fmt.Fprintf(p.w, "--- %s ---\n%s\n", title, message); err != nil {
		return fmt.Errorf("failed to hand message to share surface: %w", err)
	}

	return nil
}
