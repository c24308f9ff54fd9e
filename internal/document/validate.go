package document

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yhas1984/contabilidad-personal-docker/internal/core/domain"
)

// ValidationReport is the outcome of a Validate call. Errors block
// generation; warnings never do.
type ValidationReport struct {
	IsValid  bool
	Errors   []string
	Warnings []string
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[+]?[(]?[0-9]{1,4}[)]?[-\s.]?[0-9]{1,4}[-\s.]?[0-9]{1,9}$`)
	dniPattern   = regexp.MustCompile(`^[0-9XYZ][0-9]{7}[A-Z]$`)
)

// Validate checks that a document-generation payload carries the minimum
// required fields for the given kind. Required-field violations become
// errors; recommended-field violations become warnings. Composite kinds
// (report, receipt) validate their nested entities recursively and merge
// the lists with a prefix naming the failing entity.
//
// Validate never panics: an unexpected internal failure is reported as a
// single synthetic error so callers always receive a well-formed report.
func Validate(payload any, kind Kind) (report ValidationReport) {
	report = ValidationReport{IsValid: true}

	defer func() {
		if r := recover(); r != nil {
			report = ValidationReport{
				IsValid: false,
				Errors:  []string{fmt.Sprintf("Error inesperado durante la validación: %v", r)},
			}
		}
	}()

	switch kind {
	case KindTransaction:
		validateTransaction(payload, &report)
	case KindClient:
		validateClient(payload, &report)
	case KindCompany:
		validateCompany(payload, &report)
	case KindReport:
		validateReport(payload, &report)
	case KindReceipt:
		validateReceipt(payload, &report)
	default:
		report.Warnings = append(report.Warnings, fmt.Sprintf("Tipo de validación '%s' no reconocido", kind))
	}

	report.IsValid = len(report.Errors) == 0
	return report
}

func positiveAmount(v decimal.Decimal, field string, report *ValidationReport) {
	if v.Sign() <= 0 {
		report.Errors = append(report.Errors, fmt.Sprintf("El campo %s debe ser un número positivo", field))
	}
}

func validateTransaction(payload any, report *ValidationReport) {
	tx, ok := asTransaction(payload)
	if !ok {
		report.Errors = append(report.Errors, "La transacción es nula o indefinida")
		return
	}

	positiveAmount(tx.AmountReceived, "eurosReceived", report)
	positiveAmount(tx.AmountDelivered, "bsDelivered", report)
	positiveAmount(tx.ExchangeRate, "exchangeRate", report)

	if tx.Date.IsZero() {
		report.Errors = append(report.Errors, "El campo date debe ser una fecha válida")
	}

	if tx.Client.Name == "" && tx.ClientID == "" {
		report.Errors = append(report.Errors, "El campo client es obligatorio")
	}
}

func validateClient(payload any, report *ValidationReport) {
	client, ok := asClient(payload)
	if !ok {
		report.Errors = append(report.Errors, "El cliente es nulo o indefinido")
		return
	}

	if strings.TrimSpace(client.Name) == "" {
		report.Errors = append(report.Errors, "El nombre del cliente es obligatorio")
	}

	if strings.TrimSpace(client.Email) == "" || !emailPattern.MatchString(client.Email) {
		report.Errors = append(report.Errors, "El email del cliente no es válido")
	}

	if client.Phone != "" && !phonePattern.MatchString(client.Phone) {
		report.Warnings = append(report.Warnings, "El formato del teléfono del cliente podría no ser válido")
	}

	if client.DNI != "" && !dniPattern.MatchString(client.DNI) {
		report.Warnings = append(report.Warnings, "El formato del DNI/NIE del cliente podría no ser válido")
	}
}

func validateCompany(payload any, report *ValidationReport) {
	company, ok := asCompany(payload)
	if !ok {
		report.Errors = append(report.Errors, "La información de la empresa es nula o indefinida")
		return
	}

	if strings.TrimSpace(company.Name) == "" {
		report.Errors = append(report.Errors, "El nombre de la empresa es obligatorio")
	}

	if strings.TrimSpace(company.Address) == "" {
		report.Warnings = append(report.Warnings, "La dirección de la empresa es recomendada para los reportes")
	}
	if strings.TrimSpace(company.Phone) == "" {
		report.Warnings = append(report.Warnings, "El teléfono de la empresa es recomendado para los reportes")
	}
	if strings.TrimSpace(company.Email) == "" {
		report.Warnings = append(report.Warnings, "El email de la empresa es recomendado para los reportes")
	}
	if strings.TrimSpace(company.TaxID) == "" {
		report.Warnings = append(report.Warnings, "El NIF/CIF de la empresa es recomendado para los reportes")
	}

	if company.Logo != "" && !strings.HasPrefix(company.Logo, "data:image/") && !strings.HasPrefix(company.Logo, "http") {
		report.Warnings = append(report.Warnings, "El formato del logo podría no ser compatible con la generación de PDF")
	}
}

func validateReport(payload any, report *ValidationReport) {
	req, ok := asReportRequest(payload)
	if !ok {
		report.Errors = append(report.Errors, "Los datos del reporte son nulos o indefinidos")
		return
	}

	if req.StartDate.IsZero() {
		report.Errors = append(report.Errors, "La fecha de inicio es obligatoria")
	}
	if req.EndDate.IsZero() {
		report.Errors = append(report.Errors, "La fecha de fin es obligatoria")
	}
	if !req.StartDate.IsZero() && !req.EndDate.IsZero() && req.StartDate.After(req.EndDate) {
		report.Errors = append(report.Errors, "La fecha de inicio no puede ser posterior a la fecha de fin")
	}

	if len(req.Transactions) == 0 {
		report.Warnings = append(report.Warnings, "No hay transacciones para el período seleccionado")
	} else {
		// Only the first record is sampled to keep validation cheap on
		// large ranges; a bad sample downgrades to a warning.
		nested := Validate(req.Transactions[0], KindTransaction)
		if !nested.IsValid {
			report.Warnings = append(report.Warnings, "Algunas transacciones podrían tener datos inválidos")
		}
	}

	mergeNested(report, "empresa", Validate(req.Company, KindCompany))
}

func validateReceipt(payload any, report *ValidationReport) {
	req, ok := asReceiptRequest(payload)
	if !ok {
		report.Errors = append(report.Errors, "Los datos del recibo son nulos o indefinidos")
		return
	}

	mergeNested(report, "transacción", Validate(req.Transaction, KindTransaction))
	mergeNested(report, "cliente", Validate(req.Client, KindClient))
	mergeNested(report, "empresa", Validate(req.Company, KindCompany))

	if req.Transaction.ReceiptID == "" {
		report.Errors = append(report.Errors, "El ID del recibo es obligatorio")
	}
}

// mergeNested folds a nested entity's report into the parent, prefixing
// each entry with the entity name.
func mergeNested(parent *ValidationReport, entity string, nested ValidationReport) {
	for _, e := range nested.Errors {
		parent.Errors = append(parent.Errors, entity+": "+e)
	}
	for _, w := range nested.Warnings {
		parent.Warnings = append(parent.Warnings, entity+": "+w)
	}
}

func asTransaction(payload any) (domain.Transaction, bool) {
	switch v := payload.(type) {
	case domain.Transaction:
		return v, true
	case *domain.Transaction:
		if v != nil {
			return *v, true
		}
	}
	return domain.Transaction{}, false
}

func asClient(payload any) (domain.Client, bool) {
	switch v := payload.(type) {
	case domain.Client:
		return v, true
	case *domain.Client:
		if v != nil {
			return *v, true
		}
	}
	return domain.Client{}, false
}

func asCompany(payload any) (domain.CompanyInfo, bool) {
	switch v := payload.(type) {
	case domain.CompanyInfo:
		return v, true
	case *domain.CompanyInfo:
		if v != nil {
			return *v, true
		}
	}
	return domain.CompanyInfo{}, false
}

func asReportRequest(payload any) (ReportRequest, bool) {
	switch v := payload.(type) {
	case ReportRequest:
		return v, true
	case *ReportRequest:
		if v != nil {
			return *v, true
		}
	}
	return ReportRequest{}, false
}

func asReceiptRequest(payload any) (ReceiptRequest, bool) {
	switch v := payload.(type) {
	case ReceiptRequest:
		return v, true
	case *ReceiptRequest:
		if v != nil {
			return *v, true
		}
	}
	return ReceiptRequest{}, false
}
