package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/zostay/go-mailsig/signed"
	"github.com/zostay/go-mailsig/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify message.eml",
	Short: "Extract the signed content from a message and verify its detached signature",
	Args:  cobra.ExactArgs(1),
	RunE:  RunVerify,
}

var (
	keyFile    string
	expectFile string
)

// ErrInvalidSignature is returned by the verify command when extraction
// succeeded but the signature did not verify against the canonical content.
var ErrInvalidSignature = errors.New("signature is INVALID")

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVarP(&keyFile, "key", "k", "", "path to the signer's ASCII armored public key (required)")
	verifyCmd.Flags().StringVar(&expectFile, "expect", "", "path to the expected canonical content; a diff is shown on mismatch")
	_ = verifyCmd.MarkFlagRequired("key")

	addCanonicalFlags(verifyCmd)
}

func RunVerify(cmd *cobra.Command, args []string) error {
	artifacts, err := signed.ExtractFile(args[0], canonicalOptions()...)
	if err != nil {
		return err
	}

	if expectFile != "" {
		if err := diffExpected(artifacts.Content); err != nil {
			return err
		}
	}

	armored, err := os.ReadFile(keyFile)
	if err != nil {
		return err
	}

	v, err := verify.NewVerifier(string(armored))
	if err != nil {
		return err
	}

	res, err := v.Detached(artifacts.Content, artifacts.Signature)
	if err != nil {
		return err
	}

	if len(res.KeyIDs) > 0 {
		fmt.Printf("signature issued by key ID %s\n", strings.Join(res.KeyIDs, ", "))
	}

	if !res.Valid {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, res.Err)
	}

	fmt.Println("signature is valid")
	return nil
}

// diffExpected compares the canonical content against the expected bytes and
// prints a readable diff when they differ, since a single byte of difference
// is the usual cause of a false verification failure.
func diffExpected(content []byte) error {
	expected, err := os.ReadFile(expectFile)
	if err != nil {
		return err
	}

	if bytes.Equal(expected, content) {
		fmt.Println("canonical content matches expected bytes")
		return nil
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(expected), string(content), false)
	fmt.Println(dmp.DiffPrettyText(diffs))

	return fmt.Errorf("canonical content does not match %q", expectFile)
}
