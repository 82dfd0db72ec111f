package main

import (
	"os"

	"github.com/nhle/zero-hour/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
