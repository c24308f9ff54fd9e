// Package xlsx reads and writes the client list as Excel workbooks.
package xlsx

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/yhas1984/contabilidad-personal-docker/internal/core/domain"
	"github.com/yhas1984/contabilidad-personal-docker/internal/dto"
)

const clientSheet = "Clientes"

var clientHeaders = []string{
	"Nombre", "Email", "DNI/NIE", "Teléfono", "Dirección",
	"Ciudad", "Código Postal", "País", "Notas",
}

// WriteClients renders the client list as an xlsx workbook.
func WriteClients(w io.Writer, clients []domain.Client) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(clientSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	// Drop the default sheet so the workbook only carries client data.
	_ = f.DeleteSheet("Sheet1")

	for col, header := range clientHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(clientSheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, client := range clients {
		values := []string{
			client.Name, client.Email, client.DNI, client.Phone, client.Address,
			client.City, client.PostalCode, client.Country, client.Notes,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(clientSheet, cell, value); err != nil {
				return fmt.Errorf("failed to write client row %d: %w", i+1, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// ReadClients parses an uploaded workbook into client creation requests.
// The first row is treated as the header; the column order must match the
// export layout. Empty rows are ignored.
func ReadClients(r io.Reader) ([]dto.CreateClientRequest, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := clientSheet
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		// Fall back to the first sheet for workbooks exported elsewhere.
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	cell := func(row []string, i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	requests := make([]dto.CreateClientRequest, 0, len(rows)-1)
	for _, row := range rows[1:] {
		req := dto.CreateClientRequest{
			Name:       cell(row, 0),
			Email:      cell(row, 1),
			DNI:        cell(row, 2),
			Phone:      cell(row, 3),
			Address:    cell(row, 4),
			City:       cell(row, 5),
			PostalCode: cell(row, 6),
			Country:    cell(row, 7),
			Notes:      cell(row, 8),
		}
		if req.Name == "" && req.Email == "" {
			continue
		}
		requests = append(requests, req)
	}
	return requests, nil
}
