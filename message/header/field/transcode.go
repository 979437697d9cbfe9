package field

import (
	"fmt"
	"io"
	"mime"
	"strings"

	_ "golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// charsetReader adapts CharsetDecoder to the interface mime.WordDecoder wants.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	b, err := io.ReadAll(input)
	if err != nil {
		return nil, err
	}

	s, err := CharsetDecoder(charset, b)
	if err != nil {
		return nil, err
	}

	return strings.NewReader(s), nil
}

// CharsetDecoder decodes bytes in the named character set into native unicode.
// It is backed by golang.org/x/text/encoding/ianaindex, so it can handle
// pretty much any character set a header encoded word might name in the wild
// wild world of email.
func CharsetDecoder(charset string, b []byte) (string, error) {
	e, err := ianaindex.MIME.Encoding(charset)
	if err != nil {
		return "", err
	}

	if e == nil {
		return "", fmt.Errorf("no encoding found for charset %q", charset)
	}

	eb, err := e.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}

	return string(eb), nil
}

// Decode transforms a single header field body and looks for MIME word encoded
// field values. When they are found, these are decoded into native unicode.
func Decode(body string) (string, error) {
	dec := &mime.WordDecoder{
		CharsetReader: charsetReader,
	}

	if strings.Contains(body, "=?") {
		return dec.DecodeHeader(body)
	}

	return body, nil
}
