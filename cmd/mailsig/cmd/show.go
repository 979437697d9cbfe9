package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zostay/go-mailsig/message"
	"github.com/zostay/go-mailsig/signed"
)

var showCmd = &cobra.Command{
	Use:   "show message.eml",
	Short: "Show the signed envelope located inside a message",
	Args:  cobra.ExactArgs(1),
	RunE:  RunShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func RunShow(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("%w %q: %v", signed.ErrUnreadableInput, args[0], err)
	}

	msg, err := message.ParseBytes(raw)
	if err != nil {
		return err
	}

	env, err := signed.Locate(msg)
	if err != nil {
		return err
	}

	head := msg.GetHeader()
	if from, err := head.GetFrom(); err == nil {
		fmt.Printf("from:          %s\n", from.String())
	}
	if date, err := head.GetDate(); err == nil {
		fmt.Printf("date:          %s\n", date.Format(time.RFC1123Z))
	}
	if subject, err := head.GetSubject(); err == nil {
		fmt.Printf("subject:       %s\n", subject)
	}

	contentType, err := env.Content.GetHeader().GetMediaType()
	if err != nil {
		contentType = "unknown"
	}
	sigType, err := env.Signature.GetHeader().GetMediaType()
	if err != nil {
		sigType = "unknown"
	}

	fmt.Printf("content type:  %s\n", contentType)
	fmt.Printf("signature:     %s\n", sigType)
	if protocol := env.Protocol(); protocol != "" {
		fmt.Printf("protocol:      %s\n", protocol)
	}
	if micalg := env.Micalg(); micalg != "" {
		fmt.Printf("micalg:        %s\n", micalg)
	}

	return nil
}
