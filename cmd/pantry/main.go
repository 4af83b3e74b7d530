package main

import (
	"os"

	"github.com/Makepad-fr/pantry/internal/cli"
)

func main() {
	// Root flags are parsed by the command tree; hand everything over.
	os.Exit(cli.Run(os.Args[1:], cli.Options{}))
}
