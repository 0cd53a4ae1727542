package billing

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/opsforge/fieldops/internal/domain"
)

func TestExportCSVEmpty(t *testing.T) {
	_, err := ExportCSV(nil)
	if !errors.Is(err, ErrEmptyExport) {
		t.Fatalf("expected ErrEmptyExport, got %v", err)
	}
	_, err = ExportCSV([]domain.CrmInvoice{})
	if !errors.Is(err, ErrEmptyExport) {
		t.Fatalf("expected ErrEmptyExport, got %v", err)
	}
}

func TestExportCSVHeader(t *testing.T) {
	out, err := ExportCSV([]domain.CrmInvoice{
		{InvoiceNumber: "INV-1001", CustomerName: "Jane", AmountCents: 100, Status: domain.InvoicePaid},
	})
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(out, "\n")
	if lines[0] != "Invoice Number,Customer,Due Date,Amount,Status" {
		t.Errorf("header = %q", lines[0])
	}
	if len(lines) != 2 {
		t.Errorf("expected 2 lines, got %d", len(lines))
	}
}

func TestExportCSVQuotesCommaField(t *testing.T) {
	due := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	out, err := ExportCSV([]domain.CrmInvoice{
		{InvoiceNumber: "INV-4821", CustomerName: "Smith, John", AmountCents: 45000, Status: domain.InvoicePending, DueDate: &due},
	})
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(out, "\n")
	want := `"INV-4821","Smith, John","3/15/2026","450.00","Pending"`
	if lines[1] != want {
		t.Errorf("row = %q, want %q", lines[1], want)
	}
}

func TestExportCSVEscapesQuotes(t *testing.T) {
	out, err := ExportCSV([]domain.CrmInvoice{
		{InvoiceNumber: "INV-1", CustomerName: `Bob "Ace" Jones`, AmountCents: 100, Status: domain.InvoicePaid},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"Bob ""Ace"" Jones"`) {
		t.Errorf("embedded quotes not doubled: %q", out)
	}
}

func TestExportCSVUnknownCustomerAndMissingDueDate(t *testing.T) {
	out, err := ExportCSV([]domain.CrmInvoice{
		{InvoiceNumber: "INV-9", CustomerName: "", AmountCents: 2500, Status: domain.InvoiceOverdue},
	})
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(out, "\n")
	want := `"INV-9","Unknown","N/A","25.00","Overdue"`
	if lines[1] != want {
		t.Errorf("row = %q, want %q", lines[1], want)
	}
}

func TestExportCSVPreservesOrder(t *testing.T) {
	out, err := ExportCSV([]domain.CrmInvoice{
		{InvoiceNumber: "INV-3", CustomerName: "C", AmountCents: 1, Status: domain.InvoicePaid},
		{InvoiceNumber: "INV-1", CustomerName: "A", AmountCents: 2, Status: domain.InvoicePaid},
		{InvoiceNumber: "INV-2", CustomerName: "B", AmountCents: 3, Status: domain.InvoicePaid},
	})
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(out, "\n")
	for i, num := range []string{"INV-3", "INV-1", "INV-2"} {
		if !strings.HasPrefix(lines[i+1], `"`+num+`"`) {
			t.Errorf("line %d = %q, want prefix %q", i+1, lines[i+1], num)
		}
	}
}

func TestExportFilename(t *testing.T) {
	got := ExportFilename(time.Date(2026, 2, 25, 14, 0, 0, 0, time.UTC))
	if got != "invoices_export_2026-02-25.csv" {
		t.Errorf("filename = %q", got)
	}
}
