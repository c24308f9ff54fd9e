package domain

// CompanyInfo holds the exchange office's own details, printed on every
// receipt and report. A single row is persisted; Logo is either a
// data URI or a remote URL and is optional.
type CompanyInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	TaxID   string `json:"taxId"`
	Logo    string `json:"logo,omitempty"`
	AuditFields
}
