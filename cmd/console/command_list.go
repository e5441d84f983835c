package main

import (
	"context"
	"flag"
	"io"
	"strings"

	"console/internal/types"
)

type ClientsCommand struct {
	stdout         io.Writer
	stderr         io.Writer
	newBackend     backendFactory
	newCredentials credentialsFactory
}

func NewClientsCommand(stdout, stderr io.Writer, newBackend backendFactory, newCredentials credentialsFactory) *ClientsCommand {
	return &ClientsCommand{
		stdout:         stdout,
		stderr:         stderr,
		newBackend:     newBackend,
		newCredentials: newCredentials,
	}
}

func (c *ClientsCommand) Run(args []string) error {
	fs := flag.NewFlagSet("clients", flag.ContinueOnError)
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
	if _, err := authenticate(backend, creds); err != nil {
		return err
	}

	clients, err := backend.ListClients(context.Background())
	if err != nil {
		return err
	}
	printClients(c.stdout, clients)
	return nil
}

type TicketsCommand struct {
	stdout         io.Writer
	stderr         io.Writer
	newBackend     backendFactory
	newCredentials credentialsFactory
}

func NewTicketsCommand(stdout, stderr io.Writer, newBackend backendFactory, newCredentials credentialsFactory) *TicketsCommand {
	return &TicketsCommand{
		stdout:         stdout,
		stderr:         stderr,
		newBackend:     newBackend,
		newCredentials: newCredentials,
	}
}

func (c *TicketsCommand) Run(args []string) error {
	fs := flag.NewFlagSet("tickets", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	status := fs.String("status", "", "only show tickets with this status")
	openOnly := fs.Bool("open", false, "only show unresolved tickets")
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
	if _, err := authenticate(backend, creds); err != nil {
		return err
	}

	ctx := context.Background()
	tickets, err := backend.ListTickets(ctx)
	if err != nil {
		return err
	}
	tickets = filterTickets(tickets, *status, *openOnly)

	names := map[string]string{}
	if clients, err := backend.ListClients(ctx); err == nil {
		names = clientNameIndex(clients)
	}
	printTickets(c.stdout, tickets, names)
	return nil
}

func filterTickets(tickets []types.Ticket, status string, openOnly bool) []types.Ticket {
	if status == "" && !openOnly {
		return tickets
	}
	filtered := tickets[:0:0]
	for _, ticket := range tickets {
		if status != "" && !strings.EqualFold(string(ticket.Status), status) {
			continue
		}
		if openOnly && ticket.Status.Resolved() {
			continue
		}
		filtered = append(filtered, ticket)
	}
	return filtered
}

type AssetsCommand struct {
	stdout         io.Writer
	stderr         io.Writer
	newBackend     backendFactory
	newCredentials credentialsFactory
}

func NewAssetsCommand(stdout, stderr io.Writer, newBackend backendFactory, newCredentials credentialsFactory) *AssetsCommand {
	return &AssetsCommand{
		stdout:         stdout,
		stderr:         stderr,
		newBackend:     newBackend,
		newCredentials: newCredentials,
	}
}

func (c *AssetsCommand) Run(args []string) error {
	fs := flag.NewFlagSet("assets", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	clientRef := fs.String("client", "", "only show assets for this client (id or name)")
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
	if _, err := authenticate(backend, creds); err != nil {
		return err
	}

	ctx := context.Background()
	assets, err := backend.ListAssets(ctx)
	if err != nil {
		return err
	}

	names := map[string]string{}
	if clients, err := backend.ListClients(ctx); err == nil {
		names = clientNameIndex(clients)
	}
	if *clientRef != "" {
		assets = filterAssets(assets, *clientRef, names)
	}
	printAssets(c.stdout, assets, names)
	return nil
}

func filterAssets(assets []types.Asset, ref string, names map[string]string) []types.Asset {
	filtered := assets[:0:0]
	for _, asset := range assets {
		if asset.ClientID == ref || strings.EqualFold(names[asset.ClientID], ref) {
			filtered = append(filtered, asset)
		}
	}
	return filtered
}
