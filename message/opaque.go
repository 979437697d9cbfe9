package message

import (
	"bytes"
	"io"

	"github.com/zostay/go-mailsig/message/header"
)

// Opaque is the base-level email message object. It is simply a header and a
// raw message body, very similar to the net/mail message implementation,
// except that the body is held in memory as the exact original bytes. The
// Content-transfer-encoding is never decoded, so writing an Opaque back out
// reproduces the input.
type Opaque struct {
	// Header contains the header of the message. A top-level message must
	// have several headers to be correct. A message part may have one or
	// more headers, or none at all.
	header.Header

	// body contains the raw body content of the message, which may be empty.
	body []byte

	// noHeader marks a part that had no header block at all, not even the
	// blank line that would introduce an empty one. Some generators emit
	// signature parts this way. WriteTo must not invent a blank line for
	// such parts.
	noHeader bool
}

// NewOpaque constructs an Opaque from an already parsed header and raw body
// bytes.
func NewOpaque(h *header.Header, body []byte) *Opaque {
	return &Opaque{Header: *h, body: body}
}

// WriteTo writes the Opaque header and body to the destination io.Writer.
// Unlike an io.Reader based design, this may be safely called any number of
// times and always produces identical output.
func (m *Opaque) WriteTo(w io.Writer) (int64, error) {
	var total int64
	if !m.noHeader {
		var err error
		total, err = m.Header.WriteTo(w)
		if err != nil {
			return total, err
		}
	}

	bn, err := w.Write(m.body)
	total += int64(bn)
	if err != nil {
		return total, err
	}

	return total, nil
}

// IsMultipart always returns false.
func (m *Opaque) IsMultipart() bool {
	return false
}

// GetHeader returns the header for the message.
func (m *Opaque) GetHeader() *header.Header {
	return &m.Header
}

// Body returns the raw body of the message without any transfer encoding
// decoded.
func (m *Opaque) Body() []byte {
	return m.body
}

// Reader returns a fresh reader over the raw body of the message.
func (m *Opaque) Reader() io.Reader {
	return bytes.NewReader(m.body)
}

// GetParts always returns nil.
func (m *Opaque) GetParts() []Part {
	return nil
}
