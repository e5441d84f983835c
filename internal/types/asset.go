package types

type AssetType string

const (
	AssetLaptop  AssetType = "Laptop"
	AssetDesktop AssetType = "Desktop"
	AssetServer  AssetType = "Server"
	AssetPrinter AssetType = "Printer"
	AssetRouter  AssetType = "Router"
	AssetOther   AssetType = "Other"
)

type Asset struct {
	ID              string    `json:"id"`
	ClientID        string    `json:"clientId"`
	Name            string    `json:"name"`
	Type            AssetType `json:"type"`
	PurchaseDate    string    `json:"purchaseDate"`
	WarrantyEndDate string    `json:"warrantyEndDate"`
	Notes           string    `json:"notes,omitempty"`
}

func (a Asset) RecordID() string { return a.ID }

func (a Asset) OwnerID() string { return a.ClientID }
