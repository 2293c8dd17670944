// Package main is the entry point for the ffstats CLI tool, which merges the
// published Free Fire WB leaderboards into per-player rankings.
package main

import "github.com/pable/go-ff-stats/cmd"

func main() {
	cmd.Execute()
}
