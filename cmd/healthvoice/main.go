package main

import (
	"fmt"
	"os"

	"healthvoice/cmd/healthvoice/cmd"
	"healthvoice/internal/config"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration warning: %v\n", err)
	}
	if _, err := config.GetAPIKeys(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration warning: %v\n", err)
	}

	cmd.Execute()
}
