package main

import (
	"os"

	"github.com/spigell/skill-to-role/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
