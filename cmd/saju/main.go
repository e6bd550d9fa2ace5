// Package main is the entry point for the saju CLI.
package main

import (
	"fmt"
	"os"

	"github.com/f3rmion/saju/cmd/saju/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
