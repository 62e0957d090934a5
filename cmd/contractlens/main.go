package main

import (
	"os"

	"github.com/bryanwahyu/contractlens/cmd/contractlens/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
