package domain

// DefaultCountry is assigned to clients created without an explicit country.
const DefaultCountry = "España"

// Client is a customer of the exchange service. Name and a valid email are
// mandatory; the remaining contact fields are recommended but optional.
type Client struct {
	ClientID   string `json:"clientID"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	DNI        string `json:"dni,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country"`
	Notes      string `json:"notes,omitempty"`
	AuditFields
}
