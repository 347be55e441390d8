package main

import (
	"os"

	"github.com/spendscope/spendscope/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
