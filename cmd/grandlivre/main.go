package main

import (
	"os"

	"github.com/grandlivre-dev/grandlivre/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
