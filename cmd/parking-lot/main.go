package main

import (
	"fmt"
	"os"

	"github.com/base-14/examples/go/parking-lot/internal/cli"
	"github.com/base-14/examples/go/parking-lot/internal/config"
)

var version = "dev"

func main() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}

	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
