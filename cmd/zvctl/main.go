// Package main provides the ZentriqVision operations CLI.
//
// Usage:
//
//	zvctl [flags] <command> [args]
//
// Commands:
//
//	search  - Search videos of an organization
//	video   - Read a single video or its playback URL
//	seed    - Write the demo dataset
//	token   - Issue a local HS256 token
//
// Configuration comes from the same environment variables and CONFIG_FILE
// overlay as the API.
package main

import (
	"fmt"
	"os"

	"github.com/rahulAtGit/ZentriqVision/cmd/zvctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
