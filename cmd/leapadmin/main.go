package main

import (
	"os"

	"github.com/leapstack-labs/leapadmin/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
