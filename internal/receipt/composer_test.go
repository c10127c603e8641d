package receipt

import (
	"strconv"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HasSanK911/AssuredID-Scanner/internal/barcode"
	"github.com/HasSanK911/AssuredID-Scanner/pkg/types"
)

// Test Setup

func setupComposer() *Composer {
	return NewComposer(
		barcode.ModuloEncoder{},
		"AssuredID Scanner - Receipt",
		"Thank you for your purchase!",
		64,
	)
}

func fixedIDSource() *IDSource {
	return &IDSource{
		now:  func() time.Time { return time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC) },
		intn: func(n int) int { return 42 },
	}
}

func singleItemOrder() *types.Order {
	return &types.Order{
		PatientName: "John Doe",
		Items: []types.LineItem{
			{ID: "1", Name: "Aspirin", Size: "100mg", Price: decimal.RequireFromString("5.99"), CurrencyCode: "USD"},
		},
		TotalAmount:  decimal.RequireFromString("5.99"),
		CurrencyCode: "USD",
	}
}

// Meta Generation Tests

func TestNewMeta_ReceiptID(t *testing.T) {
	source := fixedIDSource()

	meta := source.NewMeta(false)

	millis := time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC).UnixMilli()
	assert.Equal(t, "RCP-"+timestampString(millis)+"-42", meta.ReceiptID)
	assert.Empty(t, meta.ClaimNumber)
	assert.Equal(t, "March 15, 2024 2:30 PM", meta.IssuedAt)
}

func TestNewMeta_ClaimNumber_ZeroPadded(t *testing.T) {
	source := fixedIDSource()

	meta := source.NewMeta(true)

	millis := time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC).UnixMilli()
	assert.Equal(t, "CLM-"+timestampString(millis)+"-0042", meta.ClaimNumber)
}

func timestampString(millis int64) string {
	return strconv.FormatInt(millis, 10)
}

// Boxed Form Tests

func TestComposeBoxed_ContainsCoreSections(t *testing.T) {
	composer := setupComposer()
	meta := fixedIDSource().NewMeta(false)

	doc := composer.ComposeBoxed(singleItemOrder(), meta)
	text := doc.Text()

	assert.Contains(t, text, "AssuredID Scanner - Receipt")
	assert.Contains(t, text, "Receipt ID: "+meta.ReceiptID)
	assert.Contains(t, text, "Date: March 15, 2024 2:30 PM")
	assert.Contains(t, text, "Patient: John Doe")
	assert.Contains(t, text, "Aspirin (100mg)")
	assert.Contains(t, text, "Thank you for your purchase!")
}

func TestComposeBoxed_MoneyAppearsOncePerSection(t *testing.T) {
	composer := setupComposer()
	meta := fixedIDSource().NewMeta(false)

	doc := composer.ComposeBoxed(singleItemOrder(), meta)

	var itemLines, totalLines int
	for _, line := range doc.Lines {
		if strings.Contains(line, "Aspirin") && strings.Contains(line, "USD 5.99") {
			itemLines++
		}
		if strings.Contains(line, "Total:") && strings.Contains(line, "USD 5.99") {
			totalLines++
		}
	}

	assert.Equal(t, 1, itemLines)
	assert.Equal(t, 1, totalLines)
	assert.Equal(t, 2, strings.Count(doc.Text(), "USD 5.99"))
}

func TestComposeBoxed_FixedColumnBudget(t *testing.T) {
	composer := setupComposer()
	meta := fixedIDSource().NewMeta(true)

	doc := composer.ComposeBoxed(singleItemOrder(), meta)

	require.NotEmpty(t, doc.Lines)
	expected := utf8.RuneCountInString(doc.Lines[0])
	for _, line := range doc.Lines {
		assert.Equal(t, expected, utf8.RuneCountInString(line), "line %q", line)
	}
}

func TestComposeBoxed_ClaimSection(t *testing.T) {
	composer := setupComposer()
	meta := fixedIDSource().NewMeta(true)

	doc := composer.ComposeBoxed(singleItemOrder(), meta)
	text := doc.Text()

	assert.Contains(t, text, "Claim No: "+meta.ClaimNumber)
	assert.Contains(t, text, "█")
}

func TestComposeBoxed_NoClaimNumber_SectionOmitted(t *testing.T) {
	composer := setupComposer()
	meta := fixedIDSource().NewMeta(false)

	doc := composer.ComposeBoxed(singleItemOrder(), meta)

	assert.NotContains(t, doc.Text(), "Claim No:")
}

func TestComposeBoxed_EmptyItems_NoError(t *testing.T) {
	composer := setupComposer()
	meta := fixedIDSource().NewMeta(false)

	order := &types.Order{
		PatientName:  "John Doe",
		Items:        nil,
		TotalAmount:  decimal.Zero,
		CurrencyCode: "USD",
	}

	doc := composer.ComposeBoxed(order, meta)

	assert.Contains(t, doc.Text(), "Items:")
	assert.Contains(t, doc.Text(), "USD 0.00")
}

func TestComposeBoxed_RoundingUniform(t *testing.T) {
	composer := setupComposer()
	meta := fixedIDSource().NewMeta(false)

	order := &types.Order{
		PatientName: "John Doe",
		Items: []types.LineItem{
			{Name: "Aspirin", Size: "100mg", Price: decimal.RequireFromString("10.005"), CurrencyCode: "USD"},
		},
		TotalAmount:  decimal.RequireFromString("10.005"),
		CurrencyCode: "USD",
	}

	doc := composer.ComposeBoxed(order, meta)

	// Half-up rounding applies to every monetary render in the document
	assert.Equal(t, 2, strings.Count(doc.Text(), "USD 10.01"))
	assert.NotContains(t, doc.Text(), "10.005")
}

// Plain Form Tests

func TestComposePlain_Layout(t *testing.T) {
	composer := setupComposer()
	meta := fixedIDSource().NewMeta(true)

	order := &types.Order{
		PatientName: "John Doe",
		Items: []types.LineItem{
			{Name: "Aspirin", Size: "100mg", Price: decimal.RequireFromString("5.99"), CurrencyCode: "USD"},
			{Name: "Ibuprofen", Size: "200mg", Price: decimal.RequireFromString("8.50"), CurrencyCode: "USD"},
		},
		TotalAmount:  decimal.RequireFromString("14.49"),
		CurrencyCode: "USD",
	}

	doc := composer.ComposePlain(order, meta)
	text := doc.Text()

	assert.Contains(t, text, "• Aspirin (100mg) - USD 5.99")
	assert.Contains(t, text, "• Ibuprofen (200mg) - USD 8.50")
	assert.Contains(t, text, "Total: USD 14.49")
	assert.Contains(t, text, "Claim No: "+meta.ClaimNumber)
	assert.NotContains(t, text, "║")
}

func TestComposePlain_SameInputBothForms(t *testing.T) {
	composer := setupComposer()
	meta := fixedIDSource().NewMeta(true)
	order := singleItemOrder()

	boxed := composer.ComposeBoxed(order, meta)
	plain := composer.ComposePlain(order, meta)

	// Both forms derive from the same order and metadata
	for _, fragment := range []string{meta.ReceiptID, meta.ClaimNumber, "John Doe", "USD 5.99"} {
		assert.Contains(t, boxed.Text(), fragment)
		assert.Contains(t, plain.Text(), fragment)
	}
}

// Benchmark Tests

func BenchmarkComposeBoxed(b *testing.B) {
	composer := setupComposer()
	meta := fixedIDSource().NewMeta(true)
	order := singleItemOrder()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		composer.ComposeBoxed(order, meta)
	}
}
