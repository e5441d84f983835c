package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"console/internal/store"
)

type LoginCommand struct {
	stdout         io.Writer
	stderr         io.Writer
	stdin          io.Reader
	newBackend     backendFactory
	newCredentials credentialsFactory
}

func NewLoginCommand(stdout, stderr io.Writer, stdin io.Reader, newBackend backendFactory, newCredentials credentialsFactory) *LoginCommand {
	return &LoginCommand{
		stdout:         stdout,
		stderr:         stderr,
		stdin:          stdin,
		newBackend:     newBackend,
		newCredentials: newCredentials,
	}
}

func (c *LoginCommand) Run(args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "account password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if strings.TrimSpace(*username) == "" {
		return fmt.Errorf("--username is required")
	}
	if *password == "" {
		fmt.Fprint(c.stderr, "password: ")
		reader := bufio.NewReader(c.stdin)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read password: %w", err)
		}
		*password = strings.TrimRight(line, "\r\n")
	}
	if *password == "" {
		return fmt.Errorf("password must not be empty")
	}

	backend, err := c.newBackend()
	if err != nil {
		return err
	}
	creds, err := c.newCredentials()
	if err != nil {
		return err
	}

	ctx := context.Background()
	token, err := backend.Login(ctx, strings.TrimSpace(*username), *password)
	if err != nil {
		return err
	}
	backend.SetToken(token.AccessToken)
	identity, err := backend.Me(ctx)
	if err != nil {
		return err
	}
	if err := creds.Save(store.Credentials{Token: token.AccessToken, Identity: identity}); err != nil {
		return err
	}

	fmt.Fprintf(c.stdout, "signed in as %s\n", identity.DisplayName())
	return nil
}
