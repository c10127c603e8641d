package lookup

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_ReturnsFixedPayload(t *testing.T) {
	stub := NewStubLookup(time.Millisecond)

	patient, err := stub.Lookup(context.Background(), "AID-12345")

	require.NoError(t, err)
	assert.Equal(t, "John Doe", patient.Name)
	assert.Equal(t, "Active", patient.ClaimStatus)
}

func TestLookup_EmptyID(t *testing.T) {
	stub := NewStubLookup(time.Millisecond)

	_, err := stub.Lookup(context.Background(), "")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "assured ID is required")
}

func TestLookup_HonorsCancellation(t *testing.T) {
	stub := NewStubLookup(time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := stub.Lookup(ctx, "AID-12345")

	assert.Error(t, err)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}
