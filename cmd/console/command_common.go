package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"console/internal/types"
)

func exitOnErr(label string, err error, stderr io.Writer) {
	if err == nil {
		return
	}
	fmt.Fprintf(stderr, "%s error: %v\n", label, err)
	os.Exit(1)
}

func printClients(output io.Writer, clients []types.Client) {
	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tNAME\tCONTACT\tEMAIL\tPHONE")
	for _, client := range clients {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n", client.ID, client.Name, client.ContactPerson, client.Email, client.Phone)
	}
	_ = writer.Flush()
}

func printTickets(output io.Writer, tickets []types.Ticket, names map[string]string) {
	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tTITLE\tCLIENT\tSTATUS\tCREATED")
	for _, ticket := range tickets {
		client := names[ticket.ClientID]
		if client == "" {
			client = ticket.ClientID
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n", ticket.ID, ticket.Title, client, ticket.Status, types.DateOnly(ticket.CreatedDate))
	}
	_ = writer.Flush()
}

func printAssets(output io.Writer, assets []types.Asset, names map[string]string) {
	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tNAME\tCLIENT\tTYPE\tWARRANTY END")
	for _, asset := range assets {
		client := names[asset.ClientID]
		if client == "" {
			client = asset.ClientID
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n", asset.ID, asset.Name, client, asset.Type, types.DateOnly(asset.WarrantyEndDate))
	}
	_ = writer.Flush()
}

func clientNameIndex(clients []types.Client) map[string]string {
	names := make(map[string]string, len(clients))
	for _, client := range clients {
		names[client.ID] = client.Name
	}
	return names
}
