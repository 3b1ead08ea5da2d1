package main

import (
	"os"

	"github.com/arthur-debert/dotty/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
