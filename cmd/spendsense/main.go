package main

import (
	"os"

	"github.com/spendsense-dev/spendsense/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
