package main

import (
	"os"

	"github.com/consol-monitoring/icingaplugin/pkg/commands"
)

// Build contains the current git commit id
// compile passing -ldflags "-X main.Build <build sha1>" to set the id.
var Build string

func main() {
	if Build != "" {
		commands.Build = Build
	}

	os.Exit(commands.Execute())
}
