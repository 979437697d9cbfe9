// Package message is the heart of this library. It provides objects for
// parsing email messages into a tree of typed nodes while preserving every
// original byte, which is the property signature verification lives or dies
// on.
//
// Any message can be dealt with as an Opaque object: a header plus a raw,
// un-decoded body. A message whose Content-type declares a multipart/* media
// type is decomposed into a Multipart object holding its sub-parts, each of
// which is again either an Opaque or a Multipart. Both are accessed through
// the Part interface:
//
//	msg, err := message.ParseBytes(raw)
//	if err != nil {
//	  panic(err)
//	}
//	if msg.IsMultipart() {
//	  for _, part := range msg.GetParts() {
//	    ...
//	  }
//	}
//
// Calling WriteTo() on a parsed message reproduces the input byte-for-byte:
// header fields keep their original folding and capitalization, bodies are
// never transfer-decoded, and multipart preamble and epilogue bytes are
// retained.
package message
