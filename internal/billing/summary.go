package billing

import (
	"github.com/montanaflynn/stats"

	"github.com/opsforge/fieldops/internal/domain"
)

// StatusAll disables status filtering.
const StatusAll = "All"

// Summary is the aggregate view over an invoice snapshot. All totals are
// integer cents; nothing here is rounded.
type Summary struct {
	OutstandingCents int64 `json:"outstanding_cents"`
	PaidCents        int64 `json:"paid_cents"`
	OverdueCents     int64 `json:"overdue_cents"`
	PendingCount     int   `json:"pending_count"`
	OverdueCount     int   `json:"overdue_count"`
}

// Summarize reduces an invoice snapshot into outstanding/paid/overdue
// totals and per-status counts. Outstanding covers Pending plus Overdue.
func Summarize(invs []domain.CrmInvoice) Summary {
	var s Summary
	for _, inv := range invs {
		switch inv.Status {
		case domain.InvoicePending:
			s.OutstandingCents += inv.AmountCents
			s.PendingCount++
		case domain.InvoiceOverdue:
			s.OutstandingCents += inv.AmountCents
			s.OverdueCents += inv.AmountCents
			s.OverdueCount++
		case domain.InvoicePaid:
			s.PaidCents += inv.AmountCents
		}
	}
	return s
}

// FilterByStatus narrows the snapshot to a single status. "All" (or empty)
// returns the input untouched; otherwise the result is an order-preserving
// subsequence.
func FilterByStatus(invs []domain.CrmInvoice, status string) []domain.CrmInvoice {
	if status == "" || status == StatusAll {
		return invs
	}
	out := make([]domain.CrmInvoice, 0, len(invs))
	for _, inv := range invs {
		if inv.Status == status {
			out = append(out, inv)
		}
	}
	return out
}

// AmountStats returns the mean and median invoice amount in cents, zero
// when the snapshot is empty.
func AmountStats(invs []domain.CrmInvoice) (mean, median int64) {
	if len(invs) == 0 {
		return 0, 0
	}
	data := make([]float64, len(invs))
	for i, inv := range invs {
		data[i] = float64(inv.AmountCents)
	}
	m, err := stats.Mean(data)
	if err != nil {
		return 0, 0
	}
	md, err := stats.Median(data)
	if err != nil {
		return 0, 0
	}
	return int64(m), int64(md)
}
