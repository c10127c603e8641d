package barcode

import (
	"strings"

	"github.com/HasSanK911/AssuredID-Scanner/pkg/interfaces"
)

// Strategy names accepted by New
const (
	StrategySymbol      = "symbol"
	StrategyModulo      = "modulo"
	StrategyShortModulo = "short-modulo"
)

const barGlyph = "█"

// symbolPatterns maps each character of the allowed alphabet to an 11-bit
// on/off pattern. The patterns follow the structure of a CODE128 symbology
// but are invented values; the rendered output is display-only and must not
// be treated as scannable.
var symbolPatterns = map[rune]string{
	'0': "11011001100",
	'1': "11001101100",
	'2': "11001100110",
	'3': "10010011000",
	'4': "10010001100",
	'5': "10001001100",
	'6': "10011001000",
	'7': "10011000100",
	'8': "10001100100",
	'9': "11001001000",
	'A': "11001000100",
	'B': "11000100100",
	'C': "10110011100",
	'D': "10011011100",
	'E': "10011001110",
	'F': "10111001100",
	'G': "10011101100",
	'H': "10011100110",
	'I': "11001110010",
	'J': "11001011100",
	'K': "11001001110",
	'L': "11011100100",
	'M': "11001110100",
	'N': "11101101110",
	'O': "11101001100",
	'P': "11100101100",
	'Q': "11100100110",
	'R': "11101100100",
	'S': "11100110100",
	'T': "11100110010",
	'U': "11011011000",
	'V': "11011000110",
	'W': "11000110110",
	'X': "10100011000",
	'Y': "10001011000",
	'Z': "10001000110",
	'-': "10110111000",
	'.': "10110001110",
	' ': "10001101110",
}

const (
	symbolStartPattern = "11010010000"
	symbolStopPattern  = "1100011101011"
)

// SymbolEncoder renders input through the fixed symbol table, framed by
// start and stop patterns. Characters outside the allowed alphabet are
// silently dropped after uppercasing.
type SymbolEncoder struct{}

// Encode implements the BarcodeEncoder interface
func (SymbolEncoder) Encode(text string) string {
	if text == "" {
		return ""
	}

	// Disallowed characters are dropped silently; input that filters down
	// to nothing still renders the start/stop framing.
	valid := normalize(text)

	var pattern strings.Builder
	pattern.WriteString(symbolStartPattern)
	for _, r := range valid {
		if p, ok := symbolPatterns[r]; ok {
			pattern.WriteString(p)
		}
	}
	pattern.WriteString(symbolStopPattern)

	return patternToVisual(pattern.String())
}

// normalize uppercases the input and keeps only characters covered by the
// symbol table
func normalize(text string) string {
	upper := strings.ToUpper(text)
	var b strings.Builder
	for _, r := range upper {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ', r == '-', r == '.':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// patternToVisual converts a bit string to glyphs, one per bit
func patternToVisual(pattern string) string {
	var b strings.Builder
	for _, bit := range pattern {
		if bit == '1' {
			b.WriteString(barGlyph)
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// ModuloEncoder renders one bar run per input character: (code point mod 5)+1
// filled glyphs followed by a separator space, trailing separator trimmed.
// Every character is accepted as-is.
type ModuloEncoder struct{}

// Encode implements the BarcodeEncoder interface
func (ModuloEncoder) Encode(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	for _, r := range text {
		barLength := int(r)%5 + 1
		b.WriteString(strings.Repeat(barGlyph, barLength))
		b.WriteByte(' ')
	}

	return strings.TrimRight(b.String(), " ")
}

// ShortModuloEncoder is the modulo strategy with modulus 4 and space-joined
// per-character runs
type ShortModuloEncoder struct{}

// Encode implements the BarcodeEncoder interface
func (ShortModuloEncoder) Encode(text string) string {
	if text == "" {
		return ""
	}

	bars := make([]string, 0, len(text))
	for _, r := range text {
		bars = append(bars, strings.Repeat(barGlyph, int(r)%4+1))
	}

	return strings.Join(bars, " ")
}

// New returns the encoder for the named strategy. Unknown names fall back
// to the symbol-table strategy.
func New(strategy string) interfaces.BarcodeEncoder {
	switch strategy {
	case StrategyModulo:
		return ModuloEncoder{}
	case StrategyShortModulo:
		return ShortModuloEncoder{}
	default:
		return SymbolEncoder{}
	}
}
