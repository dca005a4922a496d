package main

import (
	"os"

	"github.com/vcrobe/counter/cmd/counterdev/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
