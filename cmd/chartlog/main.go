package main

import (
	"os"

	"github.com/rustyeddy/chartlog/cmd/chartlog/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
