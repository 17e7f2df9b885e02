package main

import (
	"os"

	"pkg.world.dev/world-engine/logevents/cmd/logevents/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
