package dto

// GenerateReportRequest defines the parameters for the financial report.
// Dates use the YYYY-MM-DD format.
type GenerateReportRequest struct {
	StartDate    string `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate      string `json:"endDate" binding:"required,datetime=2006-01-02"`
	OutputFormat string `json:"outputFormat" binding:"omitempty,oneof=datauri blob rawbytes"`
	ModernDesign bool   `json:"modernDesign"`
	ComparePrior bool   `json:"comparePrior"`
	AutoDownload bool   `json:"autoDownload"`
}

// GenerateReceiptRequest defines the optional knobs for receipt generation.
type GenerateReceiptRequest struct {
	OutputFormat    string `json:"outputFormat" binding:"omitempty,oneof=datauri blob rawbytes"`
	ModernDesign    bool   `json:"modernDesign"`
	ForceClientSide bool   `json:"forceClientSide"`
}

// EmailReceiptRequest defines the payload for emailing a receipt. An empty
// recipient falls back to the client's stored email address.
type EmailReceiptRequest struct {
	To      string `json:"to" binding:"omitempty,email"`
	Message string `json:"message"`
}
