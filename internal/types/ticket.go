package types

type TicketStatus string

const (
	TicketOpen       TicketStatus = "Open"
	TicketInProgress TicketStatus = "In Progress"
	TicketPaused     TicketStatus = "Paused"
	TicketCompleted  TicketStatus = "Completed"
	TicketCanceled   TicketStatus = "Canceled"
	TicketClosed     TicketStatus = "Closed"
)

// Resolved reports whether the status represents a finished ticket.
func (s TicketStatus) Resolved() bool {
	switch s {
	case TicketCompleted, TicketCanceled, TicketClosed:
		return true
	}
	return false
}

type Ticket struct {
	ID           string       `json:"id"`
	ClientID     string       `json:"clientId"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Status       TicketStatus `json:"status"`
	CreatedDate  string       `json:"createdDate"`
	ResolvedDate string       `json:"resolvedDate,omitempty"`
}

func (t Ticket) RecordID() string { return t.ID }

func (t Ticket) OwnerID() string { return t.ClientID }
