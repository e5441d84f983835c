package main

import (
	"context"
	"flag"
	"io"

	"console/internal/api"
	"console/internal/app"
	"console/internal/assistant"
	"console/internal/config"
	"console/internal/dashboard"
	"console/internal/logging"
	"console/internal/mirror"
	"console/internal/session"
	"console/internal/store"
	"console/internal/types"
)

type UICommand struct {
	stderr io.Writer
	runUI  func() error
}

func NewUICommand(stderr io.Writer, runUI func() error) *UICommand {
	return &UICommand{stderr: stderr, runUI: runUI}
}

func (c *UICommand) Run(args []string) error {
	fs := flag.NewFlagSet("ui", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	return c.runUI()
}

// runUIProcess wires the whole stack: config, logging, API client, session
// store, resource mirrors, dashboard controller, assistant, TUI.
func runUIProcess() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logging.Nop()
	var closer io.Closer
	if logPath, err := config.UILogPath(); err == nil {
		if fileLog, fileCloser, err := logging.NewFile(logPath, logging.ParseLevel(cfg.LogLevel())); err == nil {
			log = fileLog
			closer = fileCloser
		}
	}
	if closer != nil {
		defer closer.Close()
	}

	credentialsPath, err := config.CredentialsPath()
	if err != nil {
		return err
	}
	backend := api.New(cfg.BaseURL(), log)
	creds := store.NewCredentialStore(credentialsPath)
	sess := session.New(backend, creds, log)

	ctl := dashboard.New(dashboard.Deps{
		Session:          sess,
		Clients:          mirror.New[types.Client]("clients", clientAPI{backend}, log),
		Tickets:          mirror.New[types.Ticket]("tickets", ticketAPI{backend}, log),
		Assets:           mirror.New[types.Asset]("assets", assetAPI{backend}, log),
		DataInterval:     cfg.DataInterval(),
		IdentityInterval: cfg.IdentityInterval(),
		Log:              log,
	})
	ai := assistant.New(cfg.AssistantAPIKey(), cfg.AssistantModel(), log)

	return app.Run(ctl, ai, log)
}

type clientAPI struct{ backend *api.Client }

func (a clientAPI) List(ctx context.Context) ([]types.Client, error) {
	return a.backend.ListClients(ctx)
}

func (a clientAPI) Create(ctx context.Context, draft types.Client) (types.Client, error) {
	return a.backend.CreateClient(ctx, draft)
}

func (a clientAPI) Update(ctx context.Context, record types.Client) (types.Client, error) {
	return a.backend.UpdateClient(ctx, record)
}

func (a clientAPI) Delete(ctx context.Context, id string) error {
	return a.backend.DeleteClient(ctx, id)
}

type ticketAPI struct{ backend *api.Client }

func (a ticketAPI) List(ctx context.Context) ([]types.Ticket, error) {
	return a.backend.ListTickets(ctx)
}

func (a ticketAPI) Create(ctx context.Context, draft types.Ticket) (types.Ticket, error) {
	return a.backend.CreateTicket(ctx, draft)
}

func (a ticketAPI) Update(ctx context.Context, record types.Ticket) (types.Ticket, error) {
	return a.backend.UpdateTicket(ctx, record)
}

func (a ticketAPI) Delete(ctx context.Context, id string) error {
	return a.backend.DeleteTicket(ctx, id)
}

type assetAPI struct{ backend *api.Client }

func (a assetAPI) List(ctx context.Context) ([]types.Asset, error) {
	return a.backend.ListAssets(ctx)
}

func (a assetAPI) Create(ctx context.Context, draft types.Asset) (types.Asset, error) {
	return a.backend.CreateAsset(ctx, draft)
}

func (a assetAPI) Update(ctx context.Context, record types.Asset) (types.Asset, error) {
	return a.backend.UpdateAsset(ctx, record)
}

func (a assetAPI) Delete(ctx context.Context, id string) error {
	return a.backend.DeleteAsset(ctx, id)
}
