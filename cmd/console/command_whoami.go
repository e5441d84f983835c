package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"console/internal/api"
	"console/internal/types"
)

type WhoamiCommand struct {
	stdout         io.Writer
	stderr         io.Writer
	newBackend     backendFactory
	newCredentials credentialsFactory
}

func NewWhoamiCommand(stdout, stderr io.Writer, newBackend backendFactory, newCredentials credentialsFactory) *WhoamiCommand {
	return &WhoamiCommand{
		stdout:         stdout,
		stderr:         stderr,
		newBackend:     newBackend,
		newCredentials: newCredentials,
	}
}

func (c *WhoamiCommand) Run(args []string) error {
	fs := flag.NewFlagSet("whoami", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	backend, err := c.newBackend()
	if err != nil {
		return err
	}
	creds, err := c.newCredentials()
	if err != nil {
		return err
	}
	stored, err := authenticate(backend, creds)
	if err != nil {
		return err
	}

	identity, err := backend.Me(context.Background())
	cached := false
	if err != nil {
		// The stored identity is still useful when the backend is down.
		if !api.IsNetwork(err) || stored.Identity == nil {
			return err
		}
		identity = stored.Identity
		cached = true
	}

	printIdentity(c.stdout, identity, cached)
	return nil
}

func printIdentity(output io.Writer, identity *types.User, cached bool) {
	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	fmt.Fprintf(writer, "username\t%s\n", identity.Username)
	if identity.FullName != "" {
		fmt.Fprintf(writer, "name\t%s\n", identity.FullName)
	}
	if identity.Email != "" {
		fmt.Fprintf(writer, "email\t%s\n", identity.Email)
	}
	if identity.Role != "" {
		fmt.Fprintf(writer, "role\t%s\n", identity.Role)
	}
	if cached {
		fmt.Fprintf(writer, "source\tcached (backend unreachable)\n")
	}
	_ = writer.Flush()
}
