package main

import (
	"os"

	"github.com/cwbudde/flowql/cmd/flowql/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
