// Package mailsig reconstructs, from a raw stored email, the exact byte
// sequence that was originally signed, so that a detached OpenPGP signature
// can be verified against it.
//
// Mail clients and transport layers routinely rewrite line endings, re-fold
// headers, or show only a subset of a multipart message, so naively copying
// the visible body of a signed message fails verification even when the
// signature is genuine. This module parses the raw message without ever
// altering a byte, locates the multipart/signed envelope per RFC 1847, and
// re-emits the signed content part in the canonical CRLF form the signer's
// software produced before signing.
//
// The message package parses raw messages into a byte-preserving tree of
// message.Opaque and message.Multipart nodes. The signed package locates the
// signed envelope within that tree and performs the canonical serialization.
// The verify package wraps detached OpenPGP verification so the extracted
// artifacts can be checked end to end. The cmd/mailsig command glues those
// together for use from a shell.
//
// Everything is a pure, synchronous function from input bytes to output
// bytes: no global state, no streaming, no concurrency. Running an
// extraction twice on the same input produces byte-identical output.
package mailsig
