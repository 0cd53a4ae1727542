package billing

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/opsforge/fieldops/internal/domain"
)

// ErrEmptyExport is returned when an export is requested over zero
// invoices. The caller reports it instead of producing an empty file.
var ErrEmptyExport = errors.New("no invoices to export")

var csvHeader = []string{"Invoice Number", "Customer", "Due Date", "Amount", "Status"}

// ExportCSV serializes an already-filtered invoice snapshot into CSV text.
// Every data field is wrapped in double quotes with embedded quotes
// doubled, so commas in customer names stay inside their cell. A missing
// customer renders as "Unknown" and a missing due date as "N/A". The
// function only produces the text; delivering it is the caller's problem.
func ExportCSV(invs []domain.CrmInvoice) (string, error) {
	if len(invs) == 0 {
		return "", ErrEmptyExport
	}

	var b strings.Builder
	b.WriteString(strings.Join(csvHeader, ","))
	for _, inv := range invs {
		b.WriteByte('\n')
		row := []string{
			inv.InvoiceNumber,
			customerLabel(inv),
			dueDateLabel(inv.DueDate),
			FormatAmount(inv.AmountCents),
			inv.Status,
		}
		for i, cell := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
			b.WriteByte('"')
		}
	}
	return b.String(), nil
}

// ExportFilename returns the download name for an export generated today.
func ExportFilename(now time.Time) string {
	return "invoices_export_" + now.Format("2006-01-02") + ".csv"
}

func customerLabel(inv domain.CrmInvoice) string {
	if inv.CustomerName == "" {
		return "Unknown"
	}
	return inv.CustomerName
}

func dueDateLabel(d *time.Time) string {
	if d == nil {
		return "N/A"
	}
	return d.Format("1/2/2006")
}
