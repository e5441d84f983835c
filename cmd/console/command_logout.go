package main

import (
	"flag"
	"fmt"
	"io"
)

type LogoutCommand struct {
	stdout         io.Writer
	stderr         io.Writer
	newCredentials credentialsFactory
}

func NewLogoutCommand(stdout, stderr io.Writer, newCredentials credentialsFactory) *LogoutCommand {
	return &LogoutCommand{
		stdout:         stdout,
		stderr:         stderr,
		newCredentials: newCredentials,
	}
}

func (c *LogoutCommand) Run(args []string) error {
	fs := flag.NewFlagSet("logout", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	creds, err := c.newCredentials()
	if err != nil {
		return err
	}
	if err := creds.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, "signed out")
	return nil
}
