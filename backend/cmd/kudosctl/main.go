package main

import (
	"fmt"
	"os"

	"github.com/kudosboards/kudos/backend/cmd/kudosctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
