package main

import (
	"os"

	"binopt/cmd/binopt/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
