package types

// Client is a managed-service customer record as returned by the backend.
type Client struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ABN           string `json:"abn"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	MobilePhone   string `json:"mobilePhone"`
	JoinDate      string `json:"joinDate"`
	Details       string `json:"details,omitempty"`
}

func (c Client) RecordID() string { return c.ID }
