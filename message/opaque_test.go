package message_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailsig/message"
	"github.com/zostay/go-mailsig/message/header"
)

func TestNewOpaque(t *testing.T) {
	t.Parallel()

	h, err := header.Parse([]byte("Subject: test\r\n"), header.CRLF)
	require.NoError(t, err)

	m := message.NewOpaque(h, []byte("a body\r\n"))

	assert.False(t, m.IsMultipart())
	assert.Nil(t, m.GetParts())
	assert.Equal(t, "a body\r\n", string(m.Body()))

	buf := &bytes.Buffer{}
	_, err = m.WriteTo(buf)
	assert.NoError(t, err)
	assert.Equal(t, "Subject: test\r\n\r\na body\r\n", buf.String())
}

func TestOpaque_Reader(t *testing.T) {
	t.Parallel()

	h, err := header.Parse(nil, header.LF)
	require.NoError(t, err)

	m := message.NewOpaque(h, []byte("content"))

	// each call returns a fresh reader over the same bytes
	for i := 0; i < 2; i++ {
		got, err := io.ReadAll(m.Reader())
		assert.NoError(t, err)
		assert.Equal(t, "content", string(got))
	}
}
