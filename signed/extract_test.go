package signed_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailsig/message"
	"github.com/zostay/go-mailsig/signed"
)

const signatureBlock = "-----BEGIN PGP SIGNATURE-----\r\n" +
	"\r\n" +
	"iQEzBAABCAAdFiEE\r\n" +
	"-----END PGP SIGNATURE-----"

func TestExtract(t *testing.T) {
	t.Parallel()

	a, err := signed.Extract([]byte(signedMsg))
	require.NoError(t, err)

	assert.Equal(t, canonicalWant, string(a.Content))
	assert.Equal(t, signatureBlock, string(a.Signature))
}

func TestExtract_Idempotent(t *testing.T) {
	t.Parallel()

	first, err := signed.Extract([]byte(signedMsg))
	require.NoError(t, err)
	second, err := signed.Extract([]byte(signedMsg))
	require.NoError(t, err)

	assert.Equal(t, first.Content, second.Content)
	assert.Equal(t, first.Signature, second.Signature)
}

func TestExtract_ParseErrors(t *testing.T) {
	t.Parallel()

	_, err := signed.Extract([]byte("no header split at all"))
	assert.ErrorIs(t, err, message.ErrMalformedHeader)

	_, err = signed.Extract([]byte("Content-Type: text/plain\r\n\r\nplain\r\n"))
	assert.ErrorIs(t, err, signed.ErrNoSignedPart)
}

func TestExtractFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "signed.eml")
	require.NoError(t, os.WriteFile(path, []byte(signedMsg), 0o644))

	a, err := signed.ExtractFile(path)
	require.NoError(t, err)
	assert.Equal(t, canonicalWant, string(a.Content))
}

func TestExtractFile_Unreadable(t *testing.T) {
	t.Parallel()

	_, err := signed.ExtractFile(filepath.Join(t.TempDir(), "nonesuch.eml"))
	assert.ErrorIs(t, err, signed.ErrUnreadableInput)
	assert.Contains(t, err.Error(), "nonesuch.eml")
}

func TestArtifacts_WriteFiles(t *testing.T) {
	t.Parallel()

	a, err := signed.Extract([]byte(signedMsg))
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "out")
	contentPath, sigPath, err := a.WriteFiles(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, signed.ContentFileName), contentPath)
	assert.Equal(t, filepath.Join(dir, signed.SignatureFileName), sigPath)

	content, err := os.ReadFile(contentPath)
	require.NoError(t, err)
	assert.Equal(t, canonicalWant, string(content))

	sig, err := os.ReadFile(sigPath)
	require.NoError(t, err)
	assert.Equal(t, signatureBlock, string(sig))
}
