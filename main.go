package main

import (
	"os"

	"github.com/cheerioskun/regexblocks/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
