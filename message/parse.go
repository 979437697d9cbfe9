package message

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/zostay/go-mailsig/message/header"
)

// DefaultMaxMultipartDepth is the default depth the parser will recurse into
// a message.
const DefaultMaxMultipartDepth = 10

// Errors that occur during parsing.
var (
	// ErrMalformedHeader is returned by Parse when the top-level header block
	// is never terminated by a blank line, so no header/body split exists.
	ErrMalformedHeader = errors.New("message header block is not terminated by a blank line")

	// ErrNoBoundary is returned by Parse when the boundary parameter is not
	// set on the Content-type field of a message declaring a multipart media
	// type.
	ErrNoBoundary = errors.New("the boundary parameter is missing from Content-type")

	// ErrUnterminatedMultipart is returned by Parse when a multipart body
	// contains no closing boundary delimiter line.
	ErrUnterminatedMultipart = errors.New("multipart body is missing the closing boundary delimiter")
)

// splits lists the header/body split conventions we detect, most likely
// first. The first half of each split is the line break convention in use.
var splits = [][]byte{
	[]byte("\x0d\x0a\x0d\x0a"), // \r\n\r\n
	[]byte("\x0a\x0d\x0a\x0d"), // \n\r\n\r, extremely unlikely, possibly never
	[]byte("\x0a\x0a"),         // \n\n
	[]byte("\x0d\x0d"),         // \r\r
}

type parser struct {
	maxDepth int
}

func (pr *parser) clone() *parser {
	p := *pr
	return &p
}

var defaultParser = &parser{
	maxDepth: DefaultMaxMultipartDepth,
}

// ParseOption refers to options that may be passed to the Parse function to
// modify how the parser works.
type ParseOption func(pr *parser)

// WithMaxDepth is a ParseOption that controls how deep the parser will go in
// recursively parsing a multipart message. This is set to
// DefaultMaxMultipartDepth by default.
func WithMaxDepth(maxDepth int) ParseOption {
	return func(pr *parser) { pr.maxDepth = maxDepth }
}

// WithoutMultipart is a ParseOption that will not allow parsing of any
// multipart messages. The message returned from Parse() will always be
// *Opaque.
func WithoutMultipart() ParseOption {
	return func(pr *parser) { pr.maxDepth = 0 }
}

// WithUnlimitedRecursion is a ParseOption that will allow the parser to parse
// sub-parts of any depth.
func WithUnlimitedRecursion() ParseOption {
	return func(pr *parser) { pr.maxDepth = -1 }
}

// searchForSplit looks for a header/body split. Returns -1, nil if none is
// found. If the header/body split is found, it returns the location of the
// split (including the split newlines) and the line break in use.
func searchForSplit(buf []byte, subpart bool) (pos int, crlf []byte) {
	if subpart {
		// if the header is empty, the first char might be a line break,
		// indicating an empty header. It happens.
		for _, s := range splits {
			half := s[0 : len(s)/2]
			if bytes.HasPrefix(buf, half) {
				return len(half), half
			}
		}
	}

	// Find the split between header/body. Take the earliest match; ties go
	// to the most specific convention because splits is ordered that way.
	pos = -1
	for _, s := range splits {
		if testPos := bytes.Index(buf, s); testPos > -1 {
			if pos == -1 || testPos+len(s) < pos {
				pos = testPos + len(s)
				crlf = s[0 : len(s)/2]
			}
		}
	}
	return
}

// splitHeadFromBody detects the split between the message header and the
// message body as well as the line break the message is using. It returns
// the header bytes without the blank line that terminates the block, the
// line break, the body bytes, and whether a header block existed at all.
func splitHeadFromBody(m []byte, subpart bool) (hdr, crlf, body []byte, hasHeader bool, err error) {
	pos, crlf := searchForSplit(m, subpart)
	if pos >= 0 {
		return m[:pos-len(crlf)], crlf, m[pos:], true, nil
	}

	if subpart {
		// A part with no blank line has no header at all. Some generators
		// emit signature parts this way. Detect a break for rendering and
		// treat all the bytes as body.
		for _, s := range splits {
			crlf := s[0 : len(s)/2]
			if bytes.Contains(m, crlf) {
				return nil, crlf, m, false, nil
			}
		}
		return nil, header.LF.Bytes(), m, false, nil
	}

	return nil, nil, nil, false, ErrMalformedHeader
}

// parseToOpaque turns raw bytes into an *Opaque.
func (pr *parser) parseToOpaque(m []byte, subpart bool) (*Opaque, error) {
	hdr, crlf, body, hasHeader, err := splitHeadFromBody(m, subpart)
	if err != nil {
		return nil, err
	}

	head, err := header.Parse(hdr, header.Break(crlf))
	if err != nil {
		return nil, err
	}

	return &Opaque{Header: *head, body: body, noHeader: !hasHeader}, nil
}

// Parse consumes the entire input from the given reader and parses it as an
// email message. See ParseBytes for the details.
func Parse(r io.Reader, opts ...ParseOption) (Generic, error) {
	m, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseBytes(m, opts...)
}

// ParseBytes parses the given bytes as an email message and returns a Generic
// message containing the parsed content.
//
// Parsing is eager and purely in-memory. The bytes are first split into a
// header and a body at the first blank line, which also determines the line
// break convention of the message. The header is broken into fields with the
// original bytes of each field retained. If no blank line exists,
// ErrMalformedHeader is returned.
//
// If the Content-type of the message is a multipart/* media type, the body
// is then decomposed into its parts using the boundary parameter set on the
// Content-type. A multipart Content-type without a boundary parameter fails
// with ErrNoBoundary. A multipart body without a closing boundary delimiter
// line fails with ErrUnterminatedMultipart. Each part goes through the same
// process recursively, to the depth configured by WithMaxDepth().
//
// The parsed tree preserves every original byte: part bodies are never
// transfer-decoded, header fields keep their folds, and the preamble and
// epilogue of every multipart body are retained, so the WriteTo() method of
// the returned message reproduces the input byte-for-byte.
func ParseBytes(m []byte, opts ...ParseOption) (Generic, error) {
	pr := defaultParser.clone()
	for _, opt := range opts {
		opt(pr)
	}

	msg, err := pr.parseToOpaque(m, false)
	if err != nil {
		return nil, err
	}

	return pr.parse(msg, 0)
}

// parse implements the multipart decomposition phase of ParseBytes.
func (pr *parser) parse(msg *Opaque, depth int) (Generic, error) {
	// we're too deep: stop here and just return the original
	if pr.maxDepth >= 0 && depth >= pr.maxDepth {
		return msg, nil
	}

	// lookup the Content-type header
	pv, err := msg.GetContentType()
	if err != nil {
		return msg, nil
	}

	// if this is not a multipart, don't parse it
	if pv.Type() != "multipart" {
		return msg, nil
	}

	// if the boundary is missing, this message cannot be decomposed
	if pv.Boundary() == "" {
		return nil, fmt.Errorf("%w declaring %q", ErrNoBoundary, pv.MediaType())
	}

	prefix, parts, suffix, err := splitMultipart(msg.body, pv.Boundary())
	if err != nil {
		return nil, fmt.Errorf("%w %q", err, pv.Boundary())
	}

	msgParts := make([]Part, len(parts))
	for i, part := range parts {
		opMsg, err := pr.parseToOpaque(part, true)
		if err != nil {
			return nil, err
		}

		sub, err := pr.parse(opMsg, depth+1)
		if err != nil {
			return nil, err
		}

		msgParts[i] = sub
	}

	return &Multipart{
		Header: msg.Header,
		prefix: prefix,
		suffix: suffix,
		parts:  msgParts,
	}, nil
}

// delimiter records a single boundary delimiter line found in a multipart
// body.
type delimiter struct {
	start    int  // index of the leading "--"
	preStart int  // start minus the line break that precedes it, if any
	end      int  // index just past the delimiter's own line break
	closeEnd int  // index just past the "--boundary--" token (closing only)
	closing  bool // whether the delimiter ends the part list
}

// splitMultipart breaks the body of a multipart message into its parts per
// the boundary delimiter lines "--boundary" and "--boundary--" (closing).
//
// The bytes before the first delimiter, including the line break preceding
// it, are returned as the prefix (MIME preamble). The bytes after the
// closing "--boundary--" token, including its own line break and the MIME
// epilogue, are returned as the suffix. Each part spans from just past one
// delimiter line to the line break belonging to the next delimiter; that
// break belongs to the delimiter and is not included with the part.
//
// Delimiter lines may carry trailing space and tab padding before the line
// break, per RFC 2046. Padding on interior delimiters is not preserved for
// round-tripping.
func splitMultipart(body []byte, boundary string) (prefix []byte, parts [][]byte, suffix []byte, err error) {
	delim := []byte("--" + boundary)

	var marks []delimiter
	for pos := 0; pos <= len(body)-len(delim); {
		ix := bytes.Index(body[pos:], delim)
		if ix < 0 {
			break
		}
		start := pos + ix
		pos = start + len(delim)

		// delimiters are only recognized at the start of a line
		if start > 0 && body[start-1] != '\n' && body[start-1] != '\r' {
			continue
		}

		m := delimiter{start: start, preStart: start}
		if start >= 1 && (body[start-1] == '\n' || body[start-1] == '\r') {
			m.preStart--
			if start >= 2 && body[start-1] == '\n' && body[start-2] == '\r' {
				m.preStart--
			}
		}

		rest := start + len(delim)
		if bytes.HasPrefix(body[rest:], []byte("--")) {
			m.closing = true
			rest += 2
			m.closeEnd = rest
		}

		// transport padding
		for rest < len(body) && (body[rest] == ' ' || body[rest] == '\t') {
			rest++
		}

		// the delimiter line must end at a line break or at end of input
		switch {
		case rest == len(body):
			m.end = rest
		case body[rest] == '\n':
			m.end = rest + 1
		case body[rest] == '\r':
			m.end = rest + 1
			if m.end < len(body) && body[m.end] == '\n' {
				m.end++
			}
		default:
			// just part content that happens to start with the delimiter
			// token, e.g. "--boundary-like text"
			continue
		}

		marks = append(marks, m)
		pos = m.end
		if m.closing {
			break
		}
	}

	if len(marks) == 0 || !marks[len(marks)-1].closing {
		return nil, nil, nil, ErrUnterminatedMultipart
	}

	closeMark := marks[len(marks)-1]
	prefix = body[:marks[0].start]
	suffix = body[closeMark.closeEnd:]

	parts = make([][]byte, 0, len(marks)-1)
	for i := 0; i < len(marks)-1; i++ {
		lo := marks[i].end
		hi := marks[i+1].preStart
		if hi < lo {
			hi = lo
		}
		parts = append(parts, body[lo:hi])
	}

	return prefix, parts, suffix, nil
}
