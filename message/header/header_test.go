package header_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailsig/message/header"
)

const basicHeader = `Date: Mon, 23 Jul 2001 04:01:32 -0800
From: Michael Elkins <elkins@example.org>
To: Sam Roberts <sam@example.com>
Subject: anticipation of Mt Pinatubo's eruption
Content-Type: multipart/signed; boundary=bar; micalg=pgp-md5;
  protocol="application/pgp-signature"
`

func parseBasic(t *testing.T) *header.Header {
	t.Helper()
	h, err := header.Parse([]byte(basicHeader), header.LF)
	require.NoError(t, err)
	return h
}

func TestHeader_Get(t *testing.T) {
	t.Parallel()

	h := parseBasic(t)

	s, err := h.Get(header.Subject)
	assert.NoError(t, err)
	assert.Equal(t, "anticipation of Mt Pinatubo's eruption", s)

	_, err = h.Get("X-Nonesuch")
	assert.ErrorIs(t, err, header.ErrNoSuchField)
}

func TestHeader_GetAll(t *testing.T) {
	t.Parallel()

	h, err := header.Parse([]byte("Received: one\nReceived: two\n"), header.LF)
	require.NoError(t, err)

	rs, err := h.GetAll("Received")
	assert.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, rs)

	// Get reports the ambiguity, but still returns the first value
	r, err := h.Get("received")
	assert.ErrorIs(t, err, header.ErrManyFields)
	assert.Equal(t, "one", r)
}

func TestHeader_GetDate(t *testing.T) {
	t.Parallel()

	h := parseBasic(t)

	d, err := h.GetDate()
	assert.NoError(t, err)

	want := time.Date(2001, time.July, 23, 4, 1, 32, 0, time.FixedZone("", -8*3600))
	assert.True(t, want.Equal(d))
}

func TestHeader_GetContentType(t *testing.T) {
	t.Parallel()

	h := parseBasic(t)

	pv, err := h.GetContentType()
	require.NoError(t, err)
	assert.Equal(t, "multipart/signed", pv.MediaType())
	assert.Equal(t, "application/pgp-signature", pv.Protocol())
	assert.Equal(t, "pgp-md5", pv.Micalg())

	mt, err := h.GetMediaType()
	assert.NoError(t, err)
	assert.Equal(t, "multipart/signed", mt)

	b, err := h.GetBoundary()
	assert.NoError(t, err)
	assert.Equal(t, "bar", b)
}

func TestHeader_GetBoundary_Missing(t *testing.T) {
	t.Parallel()

	h, err := header.Parse([]byte("Content-Type: text/plain\n"), header.LF)
	require.NoError(t, err)

	_, err = h.GetBoundary()
	assert.ErrorIs(t, err, header.ErrNoSuchFieldParameter)

	h, err = header.Parse([]byte("Subject: none\n"), header.LF)
	require.NoError(t, err)

	_, err = h.GetBoundary()
	assert.ErrorIs(t, err, header.ErrNoSuchField)
}

func TestHeader_GetFrom(t *testing.T) {
	t.Parallel()

	h := parseBasic(t)

	al, err := h.GetFrom()
	require.NoError(t, err)
	require.Len(t, al, 1)
	assert.Equal(t, "elkins@example.org", al[0].Address())
	assert.Equal(t, "Michael Elkins", al[0].DisplayName())

	al, err = h.GetTo()
	require.NoError(t, err)
	require.Len(t, al, 1)
	assert.Equal(t, "sam@example.com", al[0].Address())
}

func TestHeader_Roundtrip(t *testing.T) {
	t.Parallel()

	h := parseBasic(t)

	// rendering appends the blank line that terminates the header
	assert.Equal(t, basicHeader+"\n", h.String())
}

func TestParseTime(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		"Mon, 23 Jul 2001 04:01:32 -0800",
		"2001-07-23T04:01:32-08:00",
		"Mon Jul 23 04:01:32 2001 PST",
	} {
		_, err := header.ParseTime(in)
		assert.NoError(t, err, in)
	}

	_, err := header.ParseTime("the twelfth of never")
	assert.Error(t, err)
}
