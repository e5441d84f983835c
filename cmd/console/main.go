package main

import (
	"fmt"
	"os"
)

const usageText = `console is a terminal client for the MSP admin backend.

Usage:
  console <command> [flags]

Commands:
  ui       run the terminal UI
  login    sign in and store the session token
  logout   destroy the stored session
  whoami   show the signed-in user
  clients  list clients
  tickets  list tickets
  assets   list assets
  config   print configuration (effective or defaults)
  help     show help

Flags:
  -h, --help   show help

Examples:
  console login --username admin
  console tickets --status Open
  console config --format toml
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		return
	}

	wiring := defaultCommandWiring(os.Stdout, os.Stderr)
	commands := buildCommands(wiring)

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return
	}

	runner, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
	exitOnErr(args[0], runner.Run(args[1:]), wiring.stderr)
}
