package main

import (
	"os"

	"github.com/FACorreiaa/go-ireland-travel-planner/cmd/planner/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
