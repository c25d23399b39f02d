package printer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	esc = 0x1B
	gs  = 0x1D
	lf  = 0x0A
)

// Alignment values for Receipt.Align
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Receipt builds an ESC/POS byte stream line by line. Width is the paper width in
// characters: 32 for 58mm rolls, 48 for 80mm.
type Receipt struct {
	buf   bytes.Buffer
	width int
}

// NewReceipt starts a receipt with the printer reset
func NewReceipt(width int) *Receipt {
	if width <= 0 {
		width = 32
	}
	r := &Receipt{width: width}
	r.buf.Write([]byte{esc, '@'})
	return r
}

// Width returns the line width in characters
func (r *Receipt) Width() int { return r.width }

func (r *Receipt) Align(align int) *Receipt {
	r.buf.Write([]byte{esc, 'a', byte(align)})
	return r
}

func (r *Receipt) Bold(on bool) *Receipt {
	b := byte(0)
	if on {
		b = 1
	}
	r.buf.Write([]byte{esc, 'E', b})
	return r
}

// Large switches double width and height on or off
func (r *Receipt) Large(on bool) *Receipt {
	size := byte(0x00)
	if on {
		size = 0x11
	}
	r.buf.Write([]byte{gs, '!', size})
	return r
}

// Text writes s and ends the line
func (r *Receipt) Text(s string) *Receipt {
	r.buf.WriteString(s)
	r.buf.WriteByte(lf)
	return r
}

func (r *Receipt) Textf(format string, args ...any) *Receipt {
	return r.Text(fmt.Sprintf(format, args...))
}

// Rule prints a full-width line of dashes
func (r *Receipt) Rule() *Receipt {
	return r.Text(strings.Repeat("-", r.width))
}

// Columns prints left and right on one line, padded to the full width. Left is
// truncated when both do not fit.
func (r *Receipt) Columns(left, right string) *Receipt {
	room := r.width - utf8.RuneCountInString(right) - 1
	if room < 1 {
		return r.Text(left).Text(right)
	}
	if utf8.RuneCountInString(left) > room {
		left = string([]rune(left)[:room])
	}
	pad := r.width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	return r.Text(left + strings.Repeat(" ", pad) + right)
}

// Item prints "qty x name" with the line total right aligned
func (r *Receipt) Item(qty int, name, total string) *Receipt {
	return r.Columns(fmt.Sprintf("%dx %s", qty, name), total)
}

// Feed prints n empty lines
func (r *Receipt) Feed(n int) *Receipt {
	for i := 0; i < n; i++ {
		r.buf.WriteByte(lf)
	}
	return r
}

// Bytes feeds the paper past the tear bar, cuts, and returns the stream
func (r *Receipt) Bytes() []byte {
	r.Feed(3)
	r.buf.Write([]byte{gs, 'V', 0x01})
	return r.buf.Bytes()
}
