package main

import (
	"os"

	"github.com/trebuchet-org/smithy/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
