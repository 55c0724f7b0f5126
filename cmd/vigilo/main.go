package main

import (
	"os"

	"github.com/edsr/vigilo/cmd/vigilo/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
