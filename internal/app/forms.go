package app

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"console/internal/types"
)

// formTarget remembers which record a finished form applies to.
type formTarget struct {
	page page
	id   string
}

func clientFormFields(c types.Client) []formField {
	return []formField{
		{label: "Name", placeholder: "Acme Pty Ltd", value: c.Name, required: true},
		{label: "ABN", placeholder: "11 222 333 444", value: c.ABN},
		{label: "Contact person", placeholder: "Jane Citizen", value: c.ContactPerson},
		{label: "Email", placeholder: "office@example.com", value: c.Email},
		{label: "Address", placeholder: "1 Example St", value: c.Address},
		{label: "Phone", placeholder: "02 9999 0000", value: c.Phone},
		{label: "Mobile", placeholder: "0400 000 000", value: c.MobilePhone},
		{label: "Details", placeholder: "notes", value: c.Details},
	}
}

func clientFromValues(base types.Client, values []string) types.Client {
	base.Name = values[0]
	base.ABN = values[1]
	base.ContactPerson = values[2]
	base.Email = values[3]
	base.Address = values[4]
	base.Phone = values[5]
	base.MobilePhone = values[6]
	base.Details = values[7]
	return base
}

func ticketFormFields(t types.Ticket, clientName string) []formField {
	return []formField{
		{label: "Title", placeholder: "Printer offline", value: t.Title, required: true},
		{label: "Client", placeholder: "client name or id", value: clientName, required: true},
		{label: "Status", placeholder: "Open", value: string(t.Status)},
		{label: "Description", placeholder: "what happened", value: t.Description},
	}
}

func ticketFromValues(base types.Ticket, values []string, clients []types.Client) (types.Ticket, error) {
	clientID, err := resolveClientRef(values[1], clients)
	if err != nil {
		return types.Ticket{}, err
	}
	base.Title = values[0]
	base.ClientID = clientID
	if values[2] != "" {
		base.Status = types.TicketStatus(values[2])
	}
	if base.Status == "" {
		base.Status = types.TicketOpen
	}
	base.Description = values[3]
	return base, nil
}

func assetFormFields(a types.Asset, clientName string) []formField {
	return []formField{
		{label: "Name", placeholder: "Front desk PC", value: a.Name, required: true},
		{label: "Client", placeholder: "client name or id", value: clientName, required: true},
		{label: "Type", placeholder: "Laptop|Desktop|Server|Printer|Router|Other", value: string(a.Type)},
		{label: "Purchase date", placeholder: "2024-01-31", value: a.PurchaseDate},
		{label: "Warranty end", placeholder: "2027-01-31", value: a.WarrantyEndDate},
		{label: "Notes", placeholder: "notes", value: a.Notes},
	}
}

func assetFromValues(base types.Asset, values []string, clients []types.Client) (types.Asset, error) {
	clientID, err := resolveClientRef(values[1], clients)
	if err != nil {
		return types.Asset{}, err
	}
	base.Name = values[0]
	base.ClientID = clientID
	if values[2] != "" {
		base.Type = types.AssetType(values[2])
	}
	if base.Type == "" {
		base.Type = types.AssetOther
	}
	base.PurchaseDate = values[3]
	base.WarrantyEndDate = values[4]
	base.Notes = values[5]
	return base, nil
}

// resolveClientRef accepts a client name or ID and returns the ID.
func resolveClientRef(ref string, clients []types.Client) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("client is required")
	}
	for _, c := range clients {
		if c.ID == ref || strings.EqualFold(c.Name, ref) {
			return c.ID, nil
		}
	}
	return "", fmt.Errorf("unknown client %q", ref)
}

func (m *Model) submitForm() tea.Cmd {
	values := m.form.Values()
	target := m.formTarget
	clients := m.ctl.Clients()
	switch target.page {
	case pageClients:
		record := clientFromValues(m.findClient(target.id), values)
		if target.id == "" {
			return mutationCmd("client created", func(ctx context.Context) error {
				_, err := m.ctl.AddClient(ctx, record)
				return err
			})
		}
		return mutationCmd("client updated", func(ctx context.Context) error {
			_, err := m.ctl.UpdateClient(ctx, record)
			return err
		})
	case pageTickets:
		record, err := ticketFromValues(m.findTicket(target.id), values, clients)
		if err != nil {
			return m.toastError(err.Error())
		}
		if target.id == "" {
			return mutationCmd("ticket created", func(ctx context.Context) error {
				_, err := m.ctl.AddTicket(ctx, record)
				return err
			})
		}
		return mutationCmd("ticket updated", func(ctx context.Context) error {
			_, err := m.ctl.UpdateTicket(ctx, record)
			return err
		})
	case pageAssets:
		record, err := assetFromValues(m.findAsset(target.id), values, clients)
		if err != nil {
			return m.toastError(err.Error())
		}
		if target.id == "" {
			return mutationCmd("asset created", func(ctx context.Context) error {
				_, err := m.ctl.AddAsset(ctx, record)
				return err
			})
		}
		return mutationCmd("asset updated", func(ctx context.Context) error {
			_, err := m.ctl.UpdateAsset(ctx, record)
			return err
		})
	}
	return nil
}

func (m *Model) findClient(id string) types.Client {
	for _, c := range m.ctl.Clients() {
		if c.ID == id {
			return c
		}
	}
	return types.Client{}
}

func (m *Model) findTicket(id string) types.Ticket {
	for _, t := range m.ctl.Tickets() {
		if t.ID == id {
			return t
		}
	}
	return types.Ticket{}
}

func (m *Model) findAsset(id string) types.Asset {
	for _, a := range m.ctl.Assets() {
		if a.ID == id {
			return a
		}
	}
	return types.Asset{}
}
