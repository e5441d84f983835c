package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"console/internal/api"
	"console/internal/store"
	"console/internal/types"
)

type fakeBackend struct {
	loginToken string
	loginErr   error
	identity   *types.User
	meErr      error
	clients    []types.Client
	tickets    []types.Ticket
	assets     []types.Asset
	listErr    error

	loginCalls [][2]string
	setTokens  []string
}

func (f *fakeBackend) Login(_ context.Context, username, password string) (*api.TokenResponse, error) {
	f.loginCalls = append(f.loginCalls, [2]string{username, password})
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &api.TokenResponse{AccessToken: f.loginToken, TokenType: "bearer"}, nil
}

func (f *fakeBackend) Me(context.Context) (*types.User, error) {
	if f.meErr != nil {
		return nil, f.meErr
	}
	return f.identity, nil
}

func (f *fakeBackend) SetToken(token string) {
	f.setTokens = append(f.setTokens, token)
}

func (f *fakeBackend) ListClients(context.Context) ([]types.Client, error) {
	return f.clients, f.listErr
}

func (f *fakeBackend) ListTickets(context.Context) ([]types.Ticket, error) {
	return f.tickets, f.listErr
}

func (f *fakeBackend) ListAssets(context.Context) ([]types.Asset, error) {
	return f.assets, f.listErr
}

type fakeCredentialStore struct {
	stored  store.Credentials
	loadErr error
	saved   []store.Credentials
	cleared int
}

func (f *fakeCredentialStore) Load() (store.Credentials, error) {
	return f.stored, f.loadErr
}

func (f *fakeCredentialStore) Save(creds store.Credentials) error {
	f.saved = append(f.saved, creds)
	f.stored = creds
	return nil
}

func (f *fakeCredentialStore) Clear() error {
	f.cleared++
	f.stored = store.Credentials{}
	return nil
}

func fixedBackend(backend commandBackend) backendFactory {
	return func() (commandBackend, error) { return backend, nil }
}

func fixedCredentials(creds credentialStore) credentialsFactory {
	return func() (credentialStore, error) { return creds, nil }
}

func TestLoginCommandSavesSessionToken(t *testing.T) {
	stdout := &bytes.Buffer{}
	backend := &fakeBackend{
		loginToken: "tok-1",
		identity:   &types.User{Username: "admin", FullName: "Ada Admin"},
	}
	creds := &fakeCredentialStore{}
	cmd := NewLoginCommand(stdout, &bytes.Buffer{}, strings.NewReader(""), fixedBackend(backend), fixedCredentials(creds))

	if err := cmd.Run([]string{"--username", "admin", "--password", "hunter2"}); err != nil {
		t.Fatalf("expected login to succeed, got err=%v", err)
	}
	if len(backend.loginCalls) != 1 || backend.loginCalls[0] != [2]string{"admin", "hunter2"} {
		t.Fatalf("unexpected login calls: %v", backend.loginCalls)
	}
	if len(backend.setTokens) != 1 || backend.setTokens[0] != "tok-1" {
		t.Fatalf("expected token adopted before /me, got %v", backend.setTokens)
	}
	if len(creds.saved) != 1 || creds.saved[0].Token != "tok-1" {
		t.Fatalf("unexpected saved credentials: %#v", creds.saved)
	}
	if creds.saved[0].Identity == nil || creds.saved[0].Identity.Username != "admin" {
		t.Fatalf("expected identity persisted alongside token: %#v", creds.saved[0])
	}
	if got := stdout.String(); got != "signed in as Ada Admin\n" {
		t.Fatalf("unexpected stdout: %q", got)
	}
}

func TestLoginCommandPromptsForPassword(t *testing.T) {
	backend := &fakeBackend{loginToken: "tok-2", identity: &types.User{Username: "admin"}}
	creds := &fakeCredentialStore{}
	cmd := NewLoginCommand(&bytes.Buffer{}, &bytes.Buffer{}, strings.NewReader("secret\n"), fixedBackend(backend), fixedCredentials(creds))

	if err := cmd.Run([]string{"--username", "admin"}); err != nil {
		t.Fatalf("expected login to succeed, got err=%v", err)
	}
	if len(backend.loginCalls) != 1 || backend.loginCalls[0][1] != "secret" {
		t.Fatalf("expected prompted password, got %v", backend.loginCalls)
	}
}

func TestLoginCommandRequiresUsername(t *testing.T) {
	cmd := NewLoginCommand(&bytes.Buffer{}, &bytes.Buffer{}, strings.NewReader(""), fixedBackend(&fakeBackend{}), fixedCredentials(&fakeCredentialStore{}))
	if err := cmd.Run(nil); err == nil {
		t.Fatal("expected missing username to fail")
	}
}

func TestLogoutCommandClearsCredentials(t *testing.T) {
	stdout := &bytes.Buffer{}
	creds := &fakeCredentialStore{stored: store.Credentials{Token: "tok"}}
	cmd := NewLogoutCommand(stdout, &bytes.Buffer{}, fixedCredentials(creds))

	if err := cmd.Run(nil); err != nil {
		t.Fatalf("expected logout to succeed, got err=%v", err)
	}
	if creds.cleared != 1 {
		t.Fatalf("expected credentials cleared once, got %d", creds.cleared)
	}
	if got := stdout.String(); got != "signed out\n" {
		t.Fatalf("unexpected stdout: %q", got)
	}
}

func TestWhoamiCommandPrintsIdentity(t *testing.T) {
	stdout := &bytes.Buffer{}
	backend := &fakeBackend{identity: &types.User{Username: "admin", Email: "admin@example.com", Role: "admin"}}
	creds := &fakeCredentialStore{stored: store.Credentials{Token: "tok"}}
	cmd := NewWhoamiCommand(stdout, &bytes.Buffer{}, fixedBackend(backend), fixedCredentials(creds))

	if err := cmd.Run(nil); err != nil {
		t.Fatalf("expected whoami to succeed, got err=%v", err)
	}
	if len(backend.setTokens) != 1 || backend.setTokens[0] != "tok" {
		t.Fatalf("expected stored token adopted, got %v", backend.setTokens)
	}
	out := stdout.String()
	for _, want := range []string{"admin", "admin@example.com"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got %q", want, out)
		}
	}
	if strings.Contains(out, "cached") {
		t.Fatalf("did not expect cached marker: %q", out)
	}
}

func TestWhoamiCommandFallsBackToCachedIdentity(t *testing.T) {
	stdout := &bytes.Buffer{}
	backend := &fakeBackend{meErr: &api.NetworkError{URL: "http://down", Err: errors.New("refused")}}
	creds := &fakeCredentialStore{stored: store.Credentials{
		Token:    "tok",
		Identity: &types.User{Username: "admin"},
	}}
	cmd := NewWhoamiCommand(stdout, &bytes.Buffer{}, fixedBackend(backend), fixedCredentials(creds))

	if err := cmd.Run(nil); err != nil {
		t.Fatalf("expected cached identity, got err=%v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "admin") || !strings.Contains(out, "cached") {
		t.Fatalf("expected cached identity output, got %q", out)
	}
}

func TestWhoamiCommandWithoutSession(t *testing.T) {
	cmd := NewWhoamiCommand(&bytes.Buffer{}, &bytes.Buffer{}, fixedBackend(&fakeBackend{}), fixedCredentials(&fakeCredentialStore{}))
	if err := cmd.Run(nil); !errors.Is(err, errNotSignedIn) {
		t.Fatalf("expected errNotSignedIn, got %v", err)
	}
}

func TestClientsCommandPrintsTable(t *testing.T) {
	stdout := &bytes.Buffer{}
	backend := &fakeBackend{clients: []types.Client{
		{ID: "c1", Name: "Acme", ContactPerson: "Jo", Email: "jo@acme.test", Phone: "555-1234"},
	}}
	creds := &fakeCredentialStore{stored: store.Credentials{Token: "tok"}}
	cmd := NewClientsCommand(stdout, &bytes.Buffer{}, fixedBackend(backend), fixedCredentials(creds))

	if err := cmd.Run(nil); err != nil {
		t.Fatalf("expected clients to succeed, got err=%v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "NAME") || !strings.Contains(out, "Acme") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestTicketsCommandFiltersByStatus(t *testing.T) {
	stdout := &bytes.Buffer{}
	backend := &fakeBackend{
		clients: []types.Client{{ID: "c1", Name: "Acme"}},
		tickets: []types.Ticket{
			{ID: "t1", ClientID: "c1", Title: "Printer jam", Status: types.TicketOpen, CreatedDate: "2026-08-01T10:00:00Z"},
			{ID: "t2", ClientID: "c1", Title: "Done thing", Status: types.TicketCompleted, CreatedDate: "2026-08-02T10:00:00Z"},
		},
	}
	creds := &fakeCredentialStore{stored: store.Credentials{Token: "tok"}}
	cmd := NewTicketsCommand(stdout, &bytes.Buffer{}, fixedBackend(backend), fixedCredentials(creds))

	if err := cmd.Run([]string{"--status", "open"}); err != nil {
		t.Fatalf("expected tickets to succeed, got err=%v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "Printer jam") || strings.Contains(out, "Done thing") {
		t.Fatalf("expected status filter applied, got %q", out)
	}
	if !strings.Contains(out, "Acme") {
		t.Fatalf("expected client name resolved, got %q", out)
	}
}

func TestTicketsCommandOpenFlagHidesResolved(t *testing.T) {
	backend := &fakeBackend{tickets: []types.Ticket{
		{ID: "t1", Title: "Open one", Status: types.TicketInProgress},
		{ID: "t2", Title: "Closed one", Status: types.TicketClosed},
	}}
	stdout := &bytes.Buffer{}
	creds := &fakeCredentialStore{stored: store.Credentials{Token: "tok"}}
	cmd := NewTicketsCommand(stdout, &bytes.Buffer{}, fixedBackend(backend), fixedCredentials(creds))

	if err := cmd.Run([]string{"--open"}); err != nil {
		t.Fatalf("expected tickets to succeed, got err=%v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "Open one") || strings.Contains(out, "Closed one") {
		t.Fatalf("expected resolved tickets hidden, got %q", out)
	}
}

func TestAssetsCommandFiltersByClientName(t *testing.T) {
	stdout := &bytes.Buffer{}
	backend := &fakeBackend{
		clients: []types.Client{{ID: "c1", Name: "Acme"}, {ID: "c2", Name: "Globex"}},
		assets: []types.Asset{
			{ID: "a1", ClientID: "c1", Name: "acme-laptop", Type: types.AssetLaptop},
			{ID: "a2", ClientID: "c2", Name: "globex-router", Type: types.AssetRouter},
		},
	}
	creds := &fakeCredentialStore{stored: store.Credentials{Token: "tok"}}
	cmd := NewAssetsCommand(stdout, &bytes.Buffer{}, fixedBackend(backend), fixedCredentials(creds))

	if err := cmd.Run([]string{"--client", "acme"}); err != nil {
		t.Fatalf("expected assets to succeed, got err=%v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "acme-laptop") || strings.Contains(out, "globex-router") {
		t.Fatalf("expected client filter applied, got %q", out)
	}
}

func TestListCommandWithoutSessionFails(t *testing.T) {
	cmd := NewClientsCommand(&bytes.Buffer{}, &bytes.Buffer{}, fixedBackend(&fakeBackend{}), fixedCredentials(&fakeCredentialStore{}))
	if err := cmd.Run(nil); !errors.Is(err, errNotSignedIn) {
		t.Fatalf("expected errNotSignedIn, got %v", err)
	}
}

func TestBuildCommandsCoversUsage(t *testing.T) {
	wiring := defaultCommandWiring(&bytes.Buffer{}, &bytes.Buffer{})
	commands := buildCommands(wiring)
	for _, name := range []string{"ui", "login", "logout", "whoami", "clients", "tickets", "assets", "config"} {
		if _, ok := commands[name]; !ok {
			t.Fatalf("missing command %q", name)
		}
	}
}
