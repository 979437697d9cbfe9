package signed

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zostay/go-mailsig/message"
	"github.com/zostay/go-mailsig/message/walk"
)

// MediaType is the media type of a signed envelope, per RFC 1847.
const MediaType = "multipart/signed"

// signatureTypes lists the media types recognized as holding a detached
// signature.
var signatureTypes = map[string]struct{}{
	"application/pgp-signature":     {},
	"application/pkcs7-signature":   {},
	"application/x-pkcs7-signature": {},
}

// Errors returned by Locate.
var (
	// ErrNoSignedPart is returned when no multipart/signed part exists
	// anywhere in the message tree.
	ErrNoSignedPart = errors.New("message contains no multipart/signed part")

	// ErrPartCount is returned when a multipart/signed part does not contain
	// exactly two sub-parts, the signed content and the detached signature.
	ErrPartCount = errors.New("multipart/signed part must contain exactly two sub-parts")

	// ErrSignatureType is returned when the second sub-part of a
	// multipart/signed part does not declare a recognized detached-signature
	// media type. Ambiguity here is always a hard error: the only purpose of
	// this library is verification correctness.
	ErrSignatureType = errors.New("signature sub-part does not declare a recognized signature media type")
)

// Envelope is a view over a located multipart/signed part. Content is the
// first sub-part, the bytes that were signed, and may itself be of any media
// type including multipart/*. Signature is the second sub-part, a leaf
// holding the detached signature.
type Envelope struct {
	// Enclosing is the multipart/signed node itself.
	Enclosing *message.Multipart

	// Content is the signed content, child 0 of the envelope.
	Content message.Part

	// Signature is the detached signature, child 1 of the envelope.
	Signature message.Part
}

// Protocol returns the protocol parameter declared on the envelope's
// Content-type header, e.g. "application/pgp-signature", or an empty string
// when absent.
func (e *Envelope) Protocol() string {
	pv, err := e.Enclosing.GetContentType()
	if err != nil {
		return ""
	}
	return pv.Protocol()
}

// Micalg returns the micalg parameter declared on the envelope's
// Content-type header, e.g. "pgp-sha256", or an empty string when absent.
func (e *Envelope) Micalg() string {
	pv, err := e.Enclosing.GetContentType()
	if err != nil {
		return ""
	}
	return pv.Micalg()
}

// SignatureBytes returns the raw body of the signature sub-part, typically
// an ASCII armored signature block, with its part headers stripped and
// without any mutation or re-encoding of the bytes.
func (e *Envelope) SignatureBytes() []byte {
	return e.Signature.Body()
}

// mediaType reads the media type of a part in lowercase, or returns an empty
// string when the part has no parseable Content-type header.
func mediaType(part message.Part) string {
	mt, err := part.GetHeader().GetMediaType()
	if err != nil {
		return ""
	}
	return strings.ToLower(mt)
}

// Locate finds the first multipart/signed part of the message using a
// depth-first pre-order walk, since the signed envelope may be nested inside
// an outer multipart/mixed or multipart/alternative wrapper. It validates
// the envelope and returns it.
//
// It fails with ErrNoSignedPart if no multipart/signed part exists, with
// ErrPartCount if the located part does not have exactly two sub-parts, and
// with ErrSignatureType if the second sub-part does not declare a recognized
// signature media type.
func Locate(msg message.Generic) (*Envelope, error) {
	node := findSigned(msg)
	if node == nil {
		return nil, ErrNoSignedPart
	}

	parts := node.GetParts()
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: found %d", ErrPartCount, len(parts))
	}

	sig := parts[1]
	st := mediaType(sig)
	if _, ok := signatureTypes[st]; !ok || sig.IsMultipart() {
		if st == "" {
			st = "none"
		}
		return nil, fmt.Errorf("%w: found %s", ErrSignatureType, st)
	}

	return &Envelope{
		Enclosing: node,
		Content:   parts[0],
		Signature: sig,
	}, nil
}

// errFound terminates the walk as soon as a signed envelope is seen.
var errFound = errors.New("found")

// findSigned performs the depth-first pre-order search for a
// multipart/signed node.
func findSigned(msg message.Generic) *message.Multipart {
	var found *message.Multipart
	_ = walk.AndProcess(func(part message.Part, _ []message.Part) error {
		if mm, isMultipart := part.(*message.Multipart); isMultipart && mediaType(mm) == MediaType {
			found = mm
			return errFound
		}
		return nil
	}, msg)
	return found
}
