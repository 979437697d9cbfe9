// Package verify wraps detached OpenPGP signature verification for the
// artifacts produced by the signed package. It deliberately keeps two
// failure modes apart: an error returned by Detached means verification
// could not be attempted at all, while a Result with Valid set false means
// the extraction succeeded and the content simply did not verify.
package verify

import (
	"bytes"
	"errors"

	"github.com/ProtonMail/gopenpgp/v2/crypto"
)

var armorHeader = []byte("-----BEGIN PGP SIGNATURE-----")

// Result reports the outcome of a verification attempt.
type Result struct {
	// Valid is true when the signature verified against the content.
	Valid bool

	// KeyIDs holds the hex key IDs the signature claims to be issued by,
	// when the signature packet carries them.
	KeyIDs []string

	// Err holds the signature failure reason when Valid is false.
	Err error
}

// Verifier verifies detached signatures against a set of public keys.
type Verifier struct {
	ring *crypto.KeyRing
}

// NewVerifier builds a Verifier from one or more ASCII armored public keys.
func NewVerifier(armoredKeys ...string) (*Verifier, error) {
	ring, err := crypto.NewKeyRing(nil)
	if err != nil {
		return nil, err
	}

	for _, armored := range armoredKeys {
		key, err := crypto.NewKeyFromArmored(armored)
		if err != nil {
			return nil, err
		}
		if err := ring.AddKey(key); err != nil {
			return nil, err
		}
	}

	return &Verifier{ring}, nil
}

// parseSignature accepts either an ASCII armored signature block or raw
// signature packet bytes.
func parseSignature(signature []byte) (*crypto.PGPSignature, error) {
	if bytes.Contains(signature, armorHeader) {
		return crypto.NewPGPSignatureFromArmored(string(signature))
	}
	return crypto.NewPGPSignature(signature), nil
}

// Detached verifies the detached signature over the given content bytes.
//
// A cryptographically invalid signature is not an error here: it returns a
// Result with Valid set false and the failure reason in Err. An error is
// returned only when verification could not be attempted, such as a
// signature block that does not parse.
func (v *Verifier) Detached(content, signature []byte) (*Result, error) {
	sig, err := parseSignature(signature)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	if ids, ok := sig.GetHexSignatureKeyIDs(); ok {
		res.KeyIDs = ids
	}

	msg := crypto.NewPlainMessage(content)
	err = v.ring.VerifyDetached(msg, sig, crypto.GetUnixTime())
	if err != nil {
		var sigErr crypto.SignatureVerificationError
		if errors.As(err, &sigErr) {
			res.Err = sigErr
			return res, nil
		}
		return nil, err
	}

	res.Valid = true
	return res, nil
}
