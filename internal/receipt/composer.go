package receipt

import (
	"strings"
	"unicode/utf8"

	"github.com/HasSanK911/AssuredID-Scanner/pkg/interfaces"
	"github.com/HasSanK911/AssuredID-Scanner/pkg/money"
	"github.com/HasSanK911/AssuredID-Scanner/pkg/types"
)

// Composer turns an Order plus ReceiptMeta into a rendered text document.
// Two forms are produced from the same input: a box-drawn fixed-width form
// for display and sharing, and a plain-line form for printer adapters that
// manage their own layout. Composition is a pure function of its input and
// never fails; missing fields degrade by omitting the dependent section.
type Composer struct {
	encoder interfaces.BarcodeEncoder
	title   string
	footer  string
	width   int
}

// NewComposer creates a composer with the given rendering settings. Width
// is the interior column budget of the boxed form.
func NewComposer(encoder interfaces.BarcodeEncoder, title, footer string, width int) *Composer {
	return &Composer{
		encoder: encoder,
		title:   title,
		footer:  footer,
		width:   width,
	}
}

// ComposeBoxed renders the decorative box-drawn form
func (c *Composer) ComposeBoxed(order *types.Order, meta types.ReceiptMeta) types.Document {
	lines := []string{c.borderTop()}

	lines = append(lines,
		c.centerLine(c.title),
		c.borderMid(),
		c.textLine("Receipt ID: "+meta.ReceiptID),
		c.textLine("Date: "+meta.IssuedAt),
		c.textLine("Patient: "+order.PatientName),
	)

	if meta.ClaimNumber != "" {
		lines = append(lines,
			c.borderMid(),
			c.centerLine("Claim No: "+meta.ClaimNumber),
			c.centerLine(c.encoder.Encode(meta.ClaimNumber)),
		)
	}

	lines = append(lines, c.borderMid(), c.textLine("Items:"))
	for _, item := range order.Items {
		lines = append(lines, c.itemLine(item))
	}

	lines = append(lines,
		c.borderMid(),
		c.splitLine("Total:", money.Format(order.TotalAmount, order.CurrencyCode)),
		c.borderMid(),
		c.textLine(""),
		c.centerLine(c.footer),
		c.textLine(""),
		c.borderBottom(),
	)

	return types.Document{Lines: lines}
}

// ComposePlain renders the undecorated line form
func (c *Composer) ComposePlain(order *types.Order, meta types.ReceiptMeta) types.Document {
	lines := []string{
		c.title,
		"",
		"Receipt ID: " + meta.ReceiptID,
		"Date: " + meta.IssuedAt,
		"Patient: " + order.PatientName,
	}

	if meta.ClaimNumber != "" {
		lines = append(lines,
			"",
			"Claim No: "+meta.ClaimNumber,
			c.encoder.Encode(meta.ClaimNumber),
		)
	}

	lines = append(lines, "", "Items:")
	for _, item := range order.Items {
		lines = append(lines, "• "+item.Name+" ("+item.Size+") - "+money.Format(item.Price, item.CurrencyCode))
	}

	lines = append(lines,
		"",
		"Total: "+money.Format(order.TotalAmount, order.CurrencyCode),
		"",
		c.footer,
	)

	return types.Document{Lines: lines}
}

// Box layout helpers. The interior budget is width runes; text lines carry
// one space of padding inside each border glyph.

func (c *Composer) borderTop() string {
	return "╔" + strings.Repeat("═", c.width) + "╗"
}

func (c *Composer) borderMid() string {
	return "╠" + strings.Repeat("═", c.width) + "╣"
}

func (c *Composer) borderBottom() string {
	return "╚" + strings.Repeat("═", c.width) + "╝"
}

func (c *Composer) textLine(text string) string {
	return "║ " + padRight(truncate(text, c.width-2), c.width-2) + " ║"
}

func (c *Composer) centerLine(text string) string {
	budget := c.width - 2
	text = truncate(text, budget)
	gap := budget - utf8.RuneCountInString(text)
	left := gap / 2
	return "║ " + strings.Repeat(" ", left) + text + strings.Repeat(" ", gap-left) + " ║"
}

// itemLine renders name and size on the left with the price right-aligned
func (c *Composer) itemLine(item types.LineItem) string {
	return c.splitLine("• "+item.Name+" ("+item.Size+")", money.Format(item.Price, item.CurrencyCode))
}

// splitLine renders left and right texts at opposite edges of the budget,
// keeping at least one space between them
func (c *Composer) splitLine(left, right string) string {
	budget := c.width - 2
	rightLen := utf8.RuneCountInString(right)
	left = truncate(left, budget-rightLen-1)
	gap := budget - utf8.RuneCountInString(left) - rightLen
	return "║ " + left + strings.Repeat(" ", gap) + right + " ║"
}

func padRight(text string, width int) string {
	gap := width - utf8.RuneCountInString(text)
	if gap <= 0 {
		return text
	}
	return text + strings.Repeat(" ", gap)
}

func truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= width {
		return text
	}
	runes := []rune(text)
	return string(runes[:width])
}
