package main

import (
	"os"

	"github.com/marcosremar/autopodcast-editor-sub002/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
