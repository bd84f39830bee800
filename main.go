// main package for perlver command-line tool
// Package main is the entry point for the perlver CLI.
package main

import "perlver.dev/pkg/perlver/cmd"

func main() {
	cmd.Execute()
}
