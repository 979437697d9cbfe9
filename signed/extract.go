package signed

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zostay/go-mailsig/message"
)

// ErrUnreadableInput is returned by ExtractFile when the input path does not
// exist or cannot be read.
var ErrUnreadableInput = errors.New("cannot read input message")

// Conventional file names for materialized artifacts, matching what a
// detached verification command expects to be handed.
const (
	ContentFileName   = "message.txt"
	SignatureFileName = "signature.asc"
)

// Artifacts holds the two byte buffers handed to the external verifier: the
// canonical signed content and the raw detached signature.
type Artifacts struct {
	// Content is the canonical CRLF-normalized byte form of the signed
	// content part.
	Content []byte

	// Signature is the raw body of the signature part, emitted unchanged.
	Signature []byte
}

// Extract runs the whole pipeline over a raw message: parse, locate the
// signed envelope, canonicalize the content, and capture the signature
// bytes. It returns the two artifacts or the first error any stage
// produced. Extraction is idempotent: the same input always produces
// byte-identical artifacts.
func Extract(raw []byte, opts ...CanonicalOption) (*Artifacts, error) {
	msg, err := message.ParseBytes(raw)
	if err != nil {
		return nil, err
	}

	env, err := Locate(msg)
	if err != nil {
		return nil, err
	}

	content, err := env.CanonicalContent(opts...)
	if err != nil {
		return nil, err
	}

	return &Artifacts{
		Content:   content,
		Signature: env.SignatureBytes(),
	}, nil
}

// ExtractFile reads the raw message from the given path and extracts its
// artifacts. It fails with ErrUnreadableInput when the file cannot be read.
func ExtractFile(path string, opts ...CanonicalOption) (*Artifacts, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrUnreadableInput, path, err)
	}

	return Extract(raw, opts...)
}

// WriteFiles materializes the artifacts as ContentFileName and
// SignatureFileName inside dir, creating the directory if needed, and
// returns the two paths written. The bytes are written exactly as held in
// the Artifacts.
func (a *Artifacts) WriteFiles(dir string) (contentPath, sigPath string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}

	contentPath = filepath.Join(dir, ContentFileName)
	if err := os.WriteFile(contentPath, a.Content, 0o644); err != nil {
		return "", "", err
	}

	sigPath = filepath.Join(dir, SignatureFileName)
	if err := os.WriteFile(sigPath, a.Signature, 0o644); err != nil {
		return "", "", err
	}

	return contentPath, sigPath, nil
}
