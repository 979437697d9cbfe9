package signed

import (
	"bytes"
)

type canonicalizer struct {
	trailingBreak    bool
	keepLeadingBlank bool
}

var defaultCanonicalizer = canonicalizer{
	trailingBreak:    false,
	keepLeadingBlank: false,
}

// CanonicalOption adjusts how CanonicalContent serializes the signed content
// part. The defaults reproduce the convention of the signers this tool was
// validated against; the options exist because the convention is not
// universal and must be checked against real signed samples.
type CanonicalOption func(*canonicalizer)

// WithTrailingBreak appends a final CRLF to the canonical content,
// representing the line break immediately preceding the closing boundary
// line. Use this for signers whose signed region includes that break. The
// default excludes it.
func WithTrailingBreak() CanonicalOption {
	return func(c *canonicalizer) { c.trailingBreak = true }
}

// WithLeadingBlankLine keeps a blank line found at the very start of the
// content part. The default trims a single such line, because some
// generators spuriously emit one after the boundary line even though it was
// never part of the signed bytes.
func WithLeadingBlankLine() CanonicalOption {
	return func(c *canonicalizer) { c.keepLeadingBlank = true }
}

// CanonicalContent re-serializes the content sub-part into the canonical
// byte form the signer produced: the part's own header block, a blank line,
// and its raw body, with every line terminator rewritten to CRLF. The
// number of logical lines is never changed and no terminator is added or
// removed beyond the normalization itself and the conventions selected via
// CanonicalOption values.
//
// This is the single highest-risk operation of the whole tool. An off-by-one
// here turns a genuine signature into a verification failure.
func (e *Envelope) CanonicalContent(opts ...CanonicalOption) ([]byte, error) {
	c := defaultCanonicalizer
	for _, opt := range opts {
		opt(&c)
	}

	buf := &bytes.Buffer{}
	if _, err := e.Content.WriteTo(buf); err != nil {
		return nil, err
	}
	b := buf.Bytes()

	if !c.keepLeadingBlank {
		b = trimLeadingBlankLine(b)
	}

	b = normalizeBreaks(b)

	if c.trailingBreak {
		b = append(b, '\r', '\n')
	}

	return b, nil
}

// trimLeadingBlankLine removes a single empty line from the start of the
// given bytes, if one is present. Only one line is ever trimmed.
func trimLeadingBlankLine(b []byte) []byte {
	switch {
	case bytes.HasPrefix(b, []byte("\r\n")):
		return b[2:]
	case bytes.HasPrefix(b, []byte("\n")):
		return b[1:]
	}
	return b
}

// normalizeBreaks rewrites every line terminator in b to CRLF. CRLF, LF,
// and bare CR are all recognized as terminators. The count of logical lines
// is preserved and no trailing terminator is invented.
func normalizeBreaks(b []byte) []byte {
	out := make([]byte, 0, len(b)+len(b)/64)
	for i := 0; i < len(b); i++ {
		switch b[i] {
		case '\r':
			out = append(out, '\r', '\n')
			if i+1 < len(b) && b[i+1] == '\n' {
				i++
			}
		case '\n':
			out = append(out, '\r', '\n')
		default:
			out = append(out, b[i])
		}
	}
	return out
}
