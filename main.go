package main

import (
	"os"

	"github.com/kaandel/studylog/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
