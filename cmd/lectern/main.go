package main

import (
	"os"

	"github.com/lectern-project/lectern/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
