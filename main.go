package main

import (
	"os"

	"github.com/cmckinley/gitpr/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
