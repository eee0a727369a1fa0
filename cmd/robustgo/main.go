package main

import (
	"os"

	"robustgo/cmd/robustgo/commands"
)

func main() {
	root := commands.NewRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
