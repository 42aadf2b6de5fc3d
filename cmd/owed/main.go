package main

import (
	"os"

	"github.com/owed-dev/owed/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
