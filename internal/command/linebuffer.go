package command

import "strings"

// Destructive-edit codes recognized in the input stream.
const (
	codeBackspace = 0x08
	codeDelete    = 0x7f
)

// LineBuffer accumulates raw console bytes into terminated lines.
// Bytes append to a pending line until a '\n'; edit codes erase the
// character before the cursor.
//
// The original firmware trimmed two bytes on an edit code, but only
// after appending the code itself to the buffer, so its visible
// effect was exactly this single-character erase (an empty or
// one-character buffer clears either way). Pinned by test against the
// byte-wise append-then-trim model.
type LineBuffer struct {
	pending strings.Builder
}

// NewLineBuffer creates an empty LineBuffer.
func NewLineBuffer() *LineBuffer {
	return &LineBuffer{}
}

// Feed consumes a chunk of raw input and returns any completed lines,
// in order, without their terminators. The remainder stays pending.
func (b *LineBuffer) Feed(data []byte) []string {
	var lines []string
	for _, c := range data {
		switch c {
		case '\n':
			lines = append(lines, b.pending.String())
			b.pending.Reset()
		case '\r':
			// CRLF consoles; the '\n' completes the line.
		case codeBackspace, codeDelete:
			b.erase()
		default:
			b.pending.WriteByte(c)
		}
	}
	return lines
}

func (b *LineBuffer) erase() {
	s := b.pending.String()
	if len(s) == 0 {
		return
	}
	b.pending.Reset()
	b.pending.WriteString(s[:len(s)-1])
}

// Pending returns the current unterminated input, for echoing.
func (b *LineBuffer) Pending() string {
	return b.pending.String()
}

// Reset discards any pending input.
func (b *LineBuffer) Reset() {
	b.pending.Reset()
}
