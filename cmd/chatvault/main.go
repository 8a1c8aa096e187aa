package main

import (
	"os"

	"github.com/keepsake-labs/chatvault/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
