package main

import (
	"github.com/spf13/cobra"

	"github.com/zostay/go-mailsig/cmd/mailsig/cmd"
)

func main() {
	err := cmd.Execute()
	cobra.CheckErr(err)
}
