// Package main is the entry point for the notemgr CLI.
package main

import (
	"os"

	"github.com/howmuchisthe-fish/note-manager/cmd/notemgr/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
