// # cmd/fixturecheck/main.go
package main

import (
	"fixturecheck/internal/ui/cli"
	"os"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
