package message

import (
	"fmt"
	"io"

	"github.com/zostay/go-mailsig/message/header"
)

// Part is an interface defining the nodes of a parsed message. Each Part is
// either a branch or a leaf.
//
// A branch Part is one that has sub-parts. In this case, the IsMultipart()
// method will return true and GetParts() returns the sub-parts in original
// order. The Body() method returns nil.
//
// A leaf Part is one that contains content. In this case, the IsMultipart()
// method will return false, GetParts() returns nil, and Body() returns the
// raw body bytes exactly as they appeared in the input. No transfer encoding
// is ever decoded: this library exists to reproduce original bytes, and
// decoding followed by re-encoding is very likely to modify them.
//
// It should be noted that it is possible for a leaf Part to contain content
// that is itself a multipart MIME message, if parsing stopped at a depth
// limit. This is perfectly legal.
type Part interface {
	io.WriterTo

	// IsMultipart will return true if this Part is a branch with nested
	// parts. You may call the GetParts() method to process the parts only if
	// this returns true. You may call Body() only when this method returns
	// false.
	IsMultipart() bool

	// GetHeader is available on all Part objects.
	GetHeader() *header.Header

	// Body returns the raw, un-decoded body content of a leaf, but only if
	// IsMultipart() returns false. This must return nil if IsMultipart()
	// returns true.
	Body() []byte

	// GetParts provides the sub-parts of a branch. This must return nil if
	// IsMultipart() is false.
	GetParts() []Part
}

// Generic is just an alias for Part, which is intended to convey additional
// semantics:
//
// 1. The message returned is not necessarily a sub-part of a message.
//
// 2. The returned message is guaranteed to either be a *Opaque or a
// *Multipart. Therefore, it is safe to use this in a type-switch and only
// look for either of those two objects.
type Generic = Part

// Multipart is a multipart MIME message. The Content-type of the header
// always has a multipart/* media type with a boundary parameter.
type Multipart struct {
	// Header is the header for the message.
	header.Header

	// prefix and suffix are here so we can do a byte-for-byte round trip.
	// prefix holds the MIME preamble: every byte between the end of the
	// header and the first boundary delimiter line, including the line break
	// that precedes that delimiter. suffix holds every byte following the
	// "--boundary--" token of the closing delimiter line: trailing padding,
	// the final line break if any, and the MIME epilogue.
	prefix, suffix []byte

	// parts holds this layer's parts
	parts []Part
}

// WriteTo writes the header and parts to the destination io.Writer,
// reproducing the original input bytes. This method will fail with an error
// if the message does not have a Content-type boundary parameter set. May
// return an error on an IO error as well.
func (mm *Multipart) WriteTo(w io.Writer) (int64, error) {
	boundary, err := mm.GetBoundary()
	if err != nil {
		return 0, err
	}

	br := mm.Break()

	n, err := mm.Header.WriteTo(w)
	if err != nil {
		return n, err
	}

	pn, err := w.Write(mm.prefix)
	n += int64(pn)
	if err != nil {
		return n, err
	}

	for _, part := range mm.parts {
		bn, err := fmt.Fprintf(w, "--%s%s", boundary, br)
		n += int64(bn)
		if err != nil {
			return n, err
		}

		wn, err := part.WriteTo(w)
		n += wn
		if err != nil {
			return n, err
		}

		bn, err = fmt.Fprint(w, br)
		n += int64(bn)
		if err != nil {
			return n, err
		}
	}

	bn, err := fmt.Fprintf(w, "--%s--", boundary)
	n += int64(bn)
	if err != nil {
		return n, err
	}

	sn, err := w.Write(mm.suffix)
	n += int64(sn)
	if err != nil {
		return n, err
	}

	return n, nil
}

// IsMultipart always returns true.
func (mm *Multipart) IsMultipart() bool {
	return true
}

// GetHeader returns the header for the message.
func (mm *Multipart) GetHeader() *header.Header {
	return &mm.Header
}

// Body always returns nil.
func (mm *Multipart) Body() []byte {
	return nil
}

// GetParts returns the sub-parts of this message in original order.
func (mm *Multipart) GetParts() []Part {
	return mm.parts
}
