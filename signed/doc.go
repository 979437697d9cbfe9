// Package signed locates the multipart/signed envelope inside a parsed
// message and reconstructs the two artifacts a detached-signature verifier
// needs: the canonical bytes of the signed content and the raw bytes of the
// signature.
//
// The signature was computed over the exact bytes of the content part as it
// appeared inside the multipart body, with line endings in the canonical
// CRLF form mandated by RFC 3156. Local storage and transport frequently
// rewrite those endings to bare LF, so the content part is re-serialized
// with every line terminator normalized back to CRLF, and with no terminator
// added or removed beyond that normalization.
//
// Whether the line break immediately preceding the closing boundary line is
// part of the signed region is not something signers agree on in practice.
// The default here excludes it, which matches the senders this tool was
// built against, and WithTrailingBreak() flips the convention for signers
// that include it. Validate against real signed samples rather than
// assuming.
package signed
