package printer

import (
	"fmt"
	"io"
	"net"
	"time"
)

// ESC/POS control sequences used by the adapter
var (
	cmdInit      = []byte{0x1B, 0x40}
	cmdAlign     = []byte{0x1B, 0x61}
	cmdCharSize  = []byte{0x1D, 0x21}
	cmdBarHeight = []byte{0x1D, 0x68}
	cmdBarcode   = []byte{0x1D, 0x6B, 0x49} // CODE128 with length prefix
	cmdFeed      = []byte{0x1B, 0x64, 0x03}
	cmdCut       = []byte{0x1D, 0x56, 0x00}
)

// Adapter drives an ESC/POS thermal printer over a byte stream, typically a
// TCP connection to a networked receipt printer. Each command is a single
// write; any write error is returned to the caller, which is expected to
// abort the remaining sequence.
type Adapter struct {
	conn io.Writer
}

// NewAdapter creates an adapter over an existing byte stream
func NewAdapter(conn io.Writer) *Adapter {
	return &Adapter{conn: conn}
}

// Dial connects to a networked printer at the given address
func Dial(address string, timeout time.Duration) (*Adapter, error) {
	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to printer at %s: %w", address, err)
	}
	return &Adapter{conn: conn}, nil
}

// Init resets the printer to its power-on state
func (a *Adapter) Init() error {
	return a.write(cmdInit)
}

// SetAlignment sets line alignment: left, center or right
func (a *Adapter) SetAlignment(alignment string) error {
	var n byte
	switch alignment {
	case "left":
		n = 0
	case "center":
		n = 1
	case "right":
		n = 2
	default:
		return fmt.Errorf("unsupported alignment: %s", alignment)
	}
	return a.write(append(append([]byte{}, cmdAlign...), n))
}

// SetFontSize selects the character size. The printer only supports normal
// and double magnification, so the pixel request maps onto the nearest.
func (a *Adapter) SetFontSize(px int) error {
	var n byte
	if px >= 28 {
		n = 0x11 // double width and height
	}
	return a.write(append(append([]byte{}, cmdCharSize...), n))
}

// PrintText prints one line of text followed by a line feed
func (a *Adapter) PrintText(text string) error {
	return a.write(append([]byte(text), '\n'))
}

// PrintScannableCode prints the data as a CODE128 barcode. Width is accepted
// for interface compatibility; ESC/POS barcode width is fixed by module size.
func (a *Adapter) PrintScannableCode(data string, width, height int) error {
	if len(data) == 0 || len(data) > 255 {
		return fmt.Errorf("barcode data length %d out of range", len(data))
	}
	if height <= 0 || height > 255 {
		height = 80
	}

	if err := a.write(append(append([]byte{}, cmdBarHeight...), byte(height))); err != nil {
		return err
	}

	payload := append(append([]byte{}, cmdBarcode...), byte(len(data)))
	payload = append(payload, []byte(data)...)
	return a.write(payload)
}

// Feed advances the paper
func (a *Adapter) Feed() error {
	return a.write(cmdFeed)
}

// Cut performs a full paper cut
func (a *Adapter) Cut() error {
	return a.write(cmdCut)
}

func (a *Adapter) write(b []byte) error {
	if _, err := a.conn.Write(b); err != nil {
		return fmt.Errorf("printer write failed: %w", err)
	}
	return nil
}
