package verify_test

import (
	"strings"
	"testing"

	"github.com/ProtonMail/gopenpgp/v2/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailsig/signed"
	"github.com/zostay/go-mailsig/verify"
)

const signedContent = "Content-Type: text/plain; charset=us-ascii\r\n" +
	"\r\n" +
	"Hello, world!"

// signingKey generates a fresh key and returns it along with its armored
// public key.
func signingKey(t *testing.T) (*crypto.Key, string) {
	t.Helper()

	key, err := crypto.GenerateKey("Test Signer", "signer@example.com", "x25519", 0)
	require.NoError(t, err)

	pub, err := key.GetArmoredPublicKey()
	require.NoError(t, err)

	return key, pub
}

// signDetached produces an armored detached signature over the given bytes.
func signDetached(t *testing.T, key *crypto.Key, content []byte) string {
	t.Helper()

	ring, err := crypto.NewKeyRing(key)
	require.NoError(t, err)

	sig, err := ring.SignDetached(crypto.NewPlainMessage(content))
	require.NoError(t, err)

	armored, err := sig.GetArmored()
	require.NoError(t, err)

	return armored
}

// buildSignedMessage assembles a multipart/signed message with LF line
// breaks around the given armored signature, so that extraction has to
// CRLF-normalize the content back into the bytes that were signed.
func buildSignedMessage(armoredSig string) string {
	return "Content-Type: multipart/signed; micalg=pgp-sha256;\n" +
		" protocol=\"application/pgp-signature\"; boundary=\"frontier\"\n" +
		"\n" +
		"--frontier\n" +
		"Content-Type: text/plain; charset=us-ascii\n" +
		"\n" +
		"Hello, world!\n" +
		"--frontier\n" +
		"Content-Type: application/pgp-signature\n" +
		"\n" +
		strings.TrimRight(armoredSig, "\n") + "\n" +
		"--frontier--\n"
}

func TestVerifier_Detached(t *testing.T) {
	t.Parallel()

	key, pub := signingKey(t)
	armoredSig := signDetached(t, key, []byte(signedContent))
	msg := buildSignedMessage(armoredSig)

	for _, tc := range []struct {
		name string
		raw  string
	}{
		{"lf", msg},
		{"crlf", strings.ReplaceAll(msg, "\n", "\r\n")},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			a, err := signed.Extract([]byte(tc.raw))
			require.NoError(t, err)
			require.Equal(t, signedContent, string(a.Content))

			v, err := verify.NewVerifier(pub)
			require.NoError(t, err)

			res, err := v.Detached(a.Content, a.Signature)
			require.NoError(t, err)
			assert.True(t, res.Valid)
			assert.NoError(t, res.Err)
			assert.NotEmpty(t, res.KeyIDs)
		})
	}
}

func TestVerifier_Detached_Tampered(t *testing.T) {
	t.Parallel()

	key, pub := signingKey(t)
	armoredSig := signDetached(t, key, []byte(signedContent))
	msg := strings.Replace(buildSignedMessage(armoredSig),
		"Hello, world!", "Hello, world?", 1)

	a, err := signed.Extract([]byte(msg))
	require.NoError(t, err)

	v, err := verify.NewVerifier(pub)
	require.NoError(t, err)

	// an invalid signature is a Result, not an error
	res, err := v.Detached(a.Content, a.Signature)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Error(t, res.Err)
}

func TestVerifier_Detached_WrongKey(t *testing.T) {
	t.Parallel()

	key, _ := signingKey(t)
	armoredSig := signDetached(t, key, []byte(signedContent))

	_, otherPub := signingKey(t)
	v, err := verify.NewVerifier(otherPub)
	require.NoError(t, err)

	res, err := v.Detached([]byte(signedContent), []byte(armoredSig))
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Error(t, res.Err)
}

func TestVerifier_Detached_GarbageSignature(t *testing.T) {
	t.Parallel()

	_, pub := signingKey(t)
	v, err := verify.NewVerifier(pub)
	require.NoError(t, err)

	_, err = v.Detached([]byte(signedContent),
		[]byte("-----BEGIN PGP SIGNATURE-----\nnot base64 at all\n-----END PGP SIGNATURE-----\n"))
	assert.Error(t, err)
}

func TestNewVerifier_BadKey(t *testing.T) {
	t.Parallel()

	_, err := verify.NewVerifier("this is not an armored key")
	assert.Error(t, err)
}
