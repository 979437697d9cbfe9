package header

import (
	"bytes"
	"io"
	"strings"

	"github.com/zostay/go-mailsig/message/header/field"
)

// Base represents a basic email message header. It is a low-level interface
// to the ordered sequence of header fields. Field names compare
// case-insensitively, but the original capitalization and original raw bytes
// of every field are preserved for output.
type Base struct {
	lbr    Break
	fields []*field.Field
}

// Break returns the line break used to separate header fields and terminate
// the header.
func (h *Base) Break() Break {
	if h.lbr == "" {
		h.lbr = LF
	}
	return h.lbr
}

// Len returns the number of header fields in the header.
func (h *Base) Len() int {
	return len(h.fields)
}

// GetField returns the nth field or nil if the index is out of range.
func (h *Base) GetField(n int) *field.Field {
	if n < 0 || n >= len(h.fields) {
		return nil
	}
	return h.fields[n]
}

// GetFieldNamed returns the nth (0-indexed) field with the given name or nil
// if no such header field is set.
func (h *Base) GetFieldNamed(name string, n int) *field.Field {
	for _, f := range h.fields {
		if strings.EqualFold(f.Name(), name) {
			if n == 0 {
				return f
			}
			n--
		}
	}
	return nil
}

// GetAllFieldsNamed returns all the fields with the given name or nil if no
// fields are set with that name.
func (h *Base) GetAllFieldsNamed(name string) []*field.Field {
	var fs []*field.Field
	for _, f := range h.fields {
		if strings.EqualFold(f.Name(), name) {
			fs = append(fs, f)
		}
	}
	return fs
}

// GetIndexesNamed returns the indexes of fields with the given name.
func (h *Base) GetIndexesNamed(name string) []int {
	var is []int
	for i, f := range h.fields {
		if strings.EqualFold(f.Name(), name) {
			is = append(is, i)
		}
	}
	return is
}

// ListFields returns all the fields in the header in original order.
func (h *Base) ListFields() []*field.Field {
	fs := make([]*field.Field, len(h.fields))
	copy(fs, h.fields)
	return fs
}

// Bytes returns the header as a slice of bytes, each field rendered from its
// original raw bytes and the whole terminated with a blank line.
func (h *Base) Bytes() []byte {
	var buf bytes.Buffer
	for _, f := range h.fields {
		buf.Write(f.Raw())
		buf.Write(h.Break().Bytes())
	}
	buf.Write(h.Break().Bytes())
	return buf.Bytes()
}

// String returns the header as a string.
func (h *Base) String() string {
	return string(h.Bytes())
}

// WriteTo writes the header, including the blank line terminating it, to the
// given io.Writer.
func (h *Base) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(h.Bytes())
	return int64(n), err
}
