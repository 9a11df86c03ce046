package main

import (
	"os"

	"pact/cmd/pact/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
