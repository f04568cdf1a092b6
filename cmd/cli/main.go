package main

import (
	"os"

	"github.com/propertyops/maintenance-console/cmd/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
