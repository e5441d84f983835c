package main

import (
	"context"
	"errors"

	"console/internal/api"
	"console/internal/config"
	"console/internal/store"
	"console/internal/types"
)

var errNotSignedIn = errors.New("not signed in; run 'console login'")

type backendFactory func() (commandBackend, error)

type credentialsFactory func() (credentialStore, error)

// commandBackend is the slice of the API client the CLI commands use.
type commandBackend interface {
	Login(ctx context.Context, username, password string) (*api.TokenResponse, error)
	Me(ctx context.Context) (*types.User, error)
	SetToken(token string)
	ListClients(ctx context.Context) ([]types.Client, error)
	ListTickets(ctx context.Context) ([]types.Ticket, error)
	ListAssets(ctx context.Context) ([]types.Asset, error)
}

type credentialStore interface {
	Load() (store.Credentials, error)
	Save(creds store.Credentials) error
	Clear() error
}

func newAPIBackend() (commandBackend, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return api.New(cfg.BaseURL(), nil), nil
}

func newCredentialStore() (credentialStore, error) {
	path, err := config.CredentialsPath()
	if err != nil {
		return nil, err
	}
	return store.NewCredentialStore(path), nil
}

// authenticate loads the persisted token into the backend, failing when no
// session has been stored.
func authenticate(backend commandBackend, creds credentialStore) (store.Credentials, error) {
	stored, err := creds.Load()
	if err != nil {
		return store.Credentials{}, err
	}
	if !stored.HasToken() {
		return store.Credentials{}, errNotSignedIn
	}
	backend.SetToken(stored.Token)
	return stored, nil
}
