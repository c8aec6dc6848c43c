package main

import (
	"os"

	"github.com/revq/revq/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
