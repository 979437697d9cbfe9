package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:           "mailsig",
	Short:         "Tools for extracting and verifying detached signatures in stored email",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() error {
	return rootCmd.Execute()
}
