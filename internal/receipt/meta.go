package receipt

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/HasSanK911/AssuredID-Scanner/pkg/types"
)

// timestampLayout is the presentation format for the issued-at line. The
// value is embedded verbatim in documents and carries no parsing contract.
const timestampLayout = "January 2, 2006 3:04 PM"

// IDSource generates receipt and claim identifiers. Identifiers combine a
// millisecond timestamp with a small random suffix; uniqueness is
// probabilistic, which is accepted for a low-volume kiosk workflow.
type IDSource struct {
	now  func() time.Time
	intn func(n int) int
}

// NewIDSource creates an IDSource backed by the wall clock
func NewIDSource() *IDSource {
	return &IDSource{
		now:  time.Now,
		intn: rand.Intn,
	}
}

// NewMeta generates fresh receipt metadata. When withClaim is set, a claim
// number is generated alongside the receipt ID.
func (s *IDSource) NewMeta(withClaim bool) types.ReceiptMeta {
	now := s.now()
	millis := now.UnixMilli()

	meta := types.ReceiptMeta{
		ReceiptID: fmt.Sprintf("RCP-%d-%d", millis, s.intn(1000)),
		IssuedAt:  now.Format(timestampLayout),
	}

	if withClaim {
		meta.ClaimNumber = fmt.Sprintf("CLM-%d-%04d", millis, s.intn(10000))
	}

	return meta
}
