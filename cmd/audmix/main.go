// SPDX-License-Identifier: EPL-2.0

// Command audmix plays, mixes and inspects sound files with the audmix
// mixer.
//
// Usage:
//
//	audmix [--config file] [--log-level level] <command> [flags] FILE...
//
// Commands:
//
//	play   - play files through the speakers
//	render - mix files offline into a WAV file
//	info   - print the decoded format of files
package main

import (
	"fmt"
	"os"

	"github.com/ik5/audmix/cmd/audmix/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
