package main

import (
	"os"

	"github.com/idilsaglam/todo/internal/cli"
)

func main() {
	// Hand the args to the CLI; it owns help, errors and exit codes.
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
