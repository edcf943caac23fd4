// Package main provides the entry point for the modelaudit CLI tool.
package main

import (
	"github.com/agentstation/modelaudit/cmd/modelaudit/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
