package lookup

import (
	"context"
	"fmt"
	"time"

	"github.com/HasSanK911/AssuredID-Scanner/pkg/types"
)

// StubLookup simulates the assured-ID claim service: a fixed network delay
// followed by a fixed payload. It stands in until the real claim backend is
// wired up; downstream code only consumes the patient name.
type StubLookup struct {
	delay time.Duration
}

// NewStubLookup creates a stub lookup with the given simulated delay
func NewStubLookup(delay time.Duration) *StubLookup {
	return &StubLookup{delay: delay}
}

// Lookup resolves an assured identifier to patient details
func (s *StubLookup) Lookup(ctx context.Context, assuredID string) (*types.Patient, error) {
	if assuredID == "" {
		return nil, fmt.Errorf("assured ID is required")
	}

	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
		return nil, fmt.Errorf("lookup cancelled: %w", ctx.Err())
	}

	return &types.Patient{
		Name:        "John Doe",
		ClaimStatus: "Active",
	}, nil
}
