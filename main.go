package main

import (
	"os"

	"github.com/vesselops/fueleu/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
