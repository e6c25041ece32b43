// Package main is the entry point for the bushou CLI.
package main

import (
	"os"

	"github.com/f3rmion/bushou/cmd/bushou/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
