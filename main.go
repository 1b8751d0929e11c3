// main package for kinfmt command-line tool
// Package main is the entry point for the kinfmt CLI.
package main

import "kinfmt.dev/pkg/kinfmt/cmd"

func main() {
	cmd.Execute()
}
