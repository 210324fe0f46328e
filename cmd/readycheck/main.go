// Package main provides the entry point for the readycheck CLI.
package main

import (
	"os"

	"github.com/Aman-CERP/readycheck/cmd/readycheck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		cmd.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
