package main

import (
	"io"
	"os"
)

type commandRunner interface {
	Run(args []string) error
}

type commandWiring struct {
	stdout         io.Writer
	stderr         io.Writer
	stdin          io.Reader
	newBackend     backendFactory
	newCredentials credentialsFactory
	runUI          func() error
}

func defaultCommandWiring(stdout, stderr io.Writer) commandWiring {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return commandWiring{
		stdout:         stdout,
		stderr:         stderr,
		stdin:          os.Stdin,
		newBackend:     newAPIBackend,
		newCredentials: newCredentialStore,
		runUI:          runUIProcess,
	}
}

func buildCommands(wiring commandWiring) map[string]commandRunner {
	return map[string]commandRunner{
		"ui":      NewUICommand(wiring.stderr, wiring.runUI),
		"login":   NewLoginCommand(wiring.stdout, wiring.stderr, wiring.stdin, wiring.newBackend, wiring.newCredentials),
		"logout":  NewLogoutCommand(wiring.stdout, wiring.stderr, wiring.newCredentials),
		"whoami":  NewWhoamiCommand(wiring.stdout, wiring.stderr, wiring.newBackend, wiring.newCredentials),
		"clients": NewClientsCommand(wiring.stdout, wiring.stderr, wiring.newBackend, wiring.newCredentials),
		"tickets": NewTicketsCommand(wiring.stdout, wiring.stderr, wiring.newBackend, wiring.newCredentials),
		"assets":  NewAssetsCommand(wiring.stdout, wiring.stderr, wiring.newBackend, wiring.newCredentials),
		"config":  NewConfigCommand(wiring.stdout, wiring.stderr),
	}
}
