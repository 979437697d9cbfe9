package signed_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailsig/message"
	"github.com/zostay/go-mailsig/signed"
)

const signedMsg = "Content-Type: multipart/signed; micalg=pgp-sha256;\r\n" +
	" protocol=\"application/pgp-signature\"; boundary=\"frontier\"\r\n" +
	"\r\n" +
	"--frontier\r\n" +
	"Content-Type: text/plain; charset=us-ascii\r\n" +
	"\r\n" +
	"Hello, world!\r\n" +
	"--frontier\r\n" +
	"Content-Type: application/pgp-signature\r\n" +
	"\r\n" +
	"-----BEGIN PGP SIGNATURE-----\r\n" +
	"\r\n" +
	"iQEzBAABCAAdFiEE\r\n" +
	"-----END PGP SIGNATURE-----\r\n" +
	"--frontier--\r\n"

func parseMsg(t *testing.T, in string) message.Generic {
	t.Helper()
	m, err := message.ParseBytes([]byte(in))
	require.NoError(t, err)
	return m
}

func TestLocate(t *testing.T) {
	t.Parallel()

	env, err := signed.Locate(parseMsg(t, signedMsg))
	require.NoError(t, err)

	assert.Equal(t, "application/pgp-signature", env.Protocol())
	assert.Equal(t, "pgp-sha256", env.Micalg())
	assert.False(t, env.Content.IsMultipart())
	assert.Contains(t, string(env.SignatureBytes()), "BEGIN PGP SIGNATURE")
}

func TestLocate_Nested(t *testing.T) {
	t.Parallel()

	// the signed envelope is wrapped in an outer multipart/mixed
	in := "Content-Type: multipart/mixed; boundary=wrap\r\n" +
		"\r\n" +
		"--wrap\r\n" +
		signedMsg +
		"--wrap--\r\n"

	env, err := signed.Locate(parseMsg(t, in))
	require.NoError(t, err)
	assert.Equal(t, "pgp-sha256", env.Micalg())
	assert.Equal(t, "Hello, world!", string(env.Content.Body()))
}

func TestLocate_NoSignedPart(t *testing.T) {
	t.Parallel()

	const in = "Content-Type: text/plain\r\n" +
		"\r\n" +
		"nothing to see here\r\n"

	_, err := signed.Locate(parseMsg(t, in))
	assert.ErrorIs(t, err, signed.ErrNoSignedPart)
}

func TestLocate_PartCount(t *testing.T) {
	t.Parallel()

	const in = "Content-Type: multipart/signed; boundary=b;\r\n" +
		" protocol=\"application/pgp-signature\"\r\n" +
		"\r\n" +
		"--b\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"only one part\r\n" +
		"--b--\r\n"

	_, err := signed.Locate(parseMsg(t, in))
	assert.ErrorIs(t, err, signed.ErrPartCount)
	assert.Contains(t, err.Error(), "found 1")
}

func TestLocate_SignatureType(t *testing.T) {
	t.Parallel()

	in := strings.ReplaceAll(signedMsg,
		"Content-Type: application/pgp-signature",
		"Content-Type: text/plain")

	_, err := signed.Locate(parseMsg(t, in))
	assert.ErrorIs(t, err, signed.ErrSignatureType)
	assert.Contains(t, err.Error(), "text/plain")
}

func TestLocate_Pkcs7(t *testing.T) {
	t.Parallel()

	in := strings.ReplaceAll(signedMsg,
		"application/pgp-signature", "application/pkcs7-signature")
	in = strings.ReplaceAll(in, "micalg=pgp-sha256", "micalg=sha-256")

	env, err := signed.Locate(parseMsg(t, in))
	require.NoError(t, err)
	assert.Equal(t, "application/pkcs7-signature", env.Protocol())
	assert.Equal(t, "sha-256", env.Micalg())
}
