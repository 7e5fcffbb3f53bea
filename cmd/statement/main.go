// Package main is the entry point for the statement CLI.
package main

import (
	"os"

	"github.com/FACorreiaa/statement-converter/cmd/statement/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
