package main

import (
	"fmt"
	"os"

	"github.com/danielarbabian/stash/internal/cli"
	"github.com/danielarbabian/stash/internal/logger"
)

func main() {
	logger.Initialize()
	defer logger.Close()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
