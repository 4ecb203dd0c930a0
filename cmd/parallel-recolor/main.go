package main

import (
	"os"

	"github.com/ironsheep/parallel-recolor/internal/cmd"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	info := cmd.BuildInfo{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
	}
	// cobra has already printed the error
	if err := cmd.Execute(info); err != nil {
		os.Exit(1)
	}
}
