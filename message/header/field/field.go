package field

import (
	"bytes"
)

// BadStartError is returned when the header begins with junk text that does not
// appear to be a header. This text is preserved in the error object.
type BadStartError struct {
	BadStart []byte // the text skipped at the start of header
}

// Error returns the error message.
func (err *BadStartError) Error() string {
	return "header starts with text that does not appear to be a header"
}

// Line represents the unparsed content for a complete header field line,
// including any folded continuation lines.
type Line []byte

// Lines represents the unparsed content for zero or more header field lines.
type Lines []Line

// Field is a single parsed header field. It keeps the original bytes exactly
// as they appeared in the input, folds and all, next to the unfolded name and
// body. The original bytes are what get written back out, so a header that
// passes through this package round-trips without modification.
type Field struct {
	raw   []byte // the original field bytes, without the final line break
	colon int    // the index of the colon within raw
	name  string
	body  string
}

// Name returns the unfolded name of the header field.
func (f *Field) Name() string {
	return f.name
}

// Body returns the unfolded body of the header field. If the body contained
// RFC 2047 encoded words that could be decoded, the decoded form is returned.
func (f *Field) Body() string {
	return f.body
}

// Raw returns the original bytes of the field, folds preserved, without the
// trailing line break.
func (f *Field) Raw() []byte {
	return f.raw
}

// String returns the original field as a string.
func (f *Field) String() string {
	return string(f.raw)
}

// ParseLines splits the given input into lines according to the rules we use
// to determine how to break header fields up inside a header. The input bytes
// are expected to include only the header. It returns the input as Lines,
// ready to feed into Parse.
//
// This method does not follow RFC 5322 precisely. It will accept input that
// the RFC would reject as part of the effort this library makes in attempting
// to be liberal in what it accepts, but strict in what it generates.
//
// A line starting with a space or tab or containing no colon is treated as a
// continuation of the previous field. If the first line (or lines) of input
// look like continuations, these lines are skipped in the Lines returned and
// a BadStartError is returned alongside the partial result.
func ParseLines(m, lb []byte) (Lines, error) {
	h := make(Lines, 0, len(m)/80)
	var err *BadStartError
	for _, line := range bytes.SplitAfter(m, lb) {
		if len(line) == 0 {
			break
		}
		if line[0] == '\t' || line[0] == ' ' || !bytes.Contains(line, []byte(":")) {
			// Start with a continuation? Weird, uh...
			if len(h) == 0 {
				if err != nil {
					err.BadStart = append(err.BadStart, line...)
				} else {
					err = &BadStartError{line}
				}
				continue
			}

			h[len(h)-1] = append(h[len(h)-1], line...)
		} else {
			h = append(h, line)
		}
	}

	if err != nil {
		return h, err
	}
	return h, nil
}

// Unfold removes the line breaks from a folded header field line so the
// logical value can be inspected. Continuation indentation is preserved as-is
// because the break itself is CRLF or LF immediately followed by the existing
// whitespace of the continuation line.
func Unfold(f []byte) []byte {
	uf := make([]byte, 0, len(f))
	for _, b := range f {
		if b != '\r' && b != '\n' {
			uf = append(uf, b)
		}
	}
	return uf
}

// Parse will take a single header field line, including any folded
// continuation lines, and construct a header field object. The original bytes
// are retained on the returned Field.
func Parse(f Line, lb []byte) *Field {
	raw := bytes.TrimRight(f, string(lb))

	off := 1
	ix := bytes.Index(raw, []byte{':'})
	if ix < 0 {
		ix = len(raw)
		off = 0
	}

	name := string(Unfold(raw[:ix]))
	body := string(bytes.TrimSpace(Unfold(raw[ix+off:])))
	decBody, err := Decode(body)
	if err == nil {
		body = decBody
	}

	return &Field{
		raw:   raw,
		colon: ix,
		name:  name,
		body:  body,
	}
}
