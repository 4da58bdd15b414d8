// Package main is the entry point for the seroost CLI.
package main

import (
	"os"

	"github.com/Aman-CERP/seroost/cmd/seroost/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
