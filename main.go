// Package main is the entry point for nubble, a live network traffic printer.
package main

import (
	"os"

	"firestige.xyz/nubble/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
