package main

import (
	"os"

	"github.com/roach88/addoncheck/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
