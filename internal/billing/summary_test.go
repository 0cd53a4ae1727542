package billing

import (
	"reflect"
	"testing"

	"github.com/opsforge/fieldops/internal/domain"
)

func inv(id int64, cents int64, status string) domain.CrmInvoice {
	return domain.CrmInvoice{ID: id, AmountCents: cents, Status: status}
}

func TestSummarize(t *testing.T) {
	invs := []domain.CrmInvoice{
		inv(1, 45000, domain.InvoicePaid),
		inv(2, 120000, domain.InvoicePending),
		inv(3, 32500, domain.InvoiceOverdue),
	}

	s := Summarize(invs)
	if s.OutstandingCents != 152500 {
		t.Errorf("outstanding = %d, want 152500", s.OutstandingCents)
	}
	if s.PaidCents != 45000 {
		t.Errorf("paid = %d, want 45000", s.PaidCents)
	}
	if s.OverdueCents != 32500 {
		t.Errorf("overdue = %d, want 32500", s.OverdueCents)
	}
	if s.PendingCount != 1 || s.OverdueCount != 1 {
		t.Errorf("counts = %d/%d, want 1/1", s.PendingCount, s.OverdueCount)
	}
}

func TestSummarizeIgnoresCancelled(t *testing.T) {
	invs := []domain.CrmInvoice{
		inv(1, 10000, domain.InvoiceCancelled),
	}
	if s := Summarize(invs); s != (Summary{}) {
		t.Errorf("cancelled invoices should not contribute, got %+v", s)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if s := Summarize(nil); s != (Summary{}) {
		t.Errorf("empty snapshot should produce zero summary, got %+v", s)
	}
}

// Many small amounts must add exactly: 0.10 a thousand times is 100.00,
// not 99.99-something.
func TestSummarizeExactCents(t *testing.T) {
	var invs []domain.CrmInvoice
	for i := 0; i < 1000; i++ {
		invs = append(invs, inv(int64(i), 10, domain.InvoicePending))
	}
	s := Summarize(invs)
	if s.OutstandingCents != 10000 {
		t.Errorf("outstanding = %d, want 10000", s.OutstandingCents)
	}
	if FormatAmount(s.OutstandingCents) != "100.00" {
		t.Errorf("formatted = %q, want 100.00", FormatAmount(s.OutstandingCents))
	}
}

func TestFilterByStatus(t *testing.T) {
	invs := []domain.CrmInvoice{
		inv(1, 100, domain.InvoicePaid),
		inv(2, 200, domain.InvoicePending),
		inv(3, 300, domain.InvoicePaid),
	}

	paid := FilterByStatus(invs, domain.InvoicePaid)
	if got := []int64{paid[0].ID, paid[1].ID}; !reflect.DeepEqual(got, []int64{1, 3}) {
		t.Errorf("paid filter = %v, want [1 3]", got)
	}

	if got := FilterByStatus(invs, StatusAll); len(got) != 3 {
		t.Errorf("All filter should pass everything, got %d", len(got))
	}
	if got := FilterByStatus(invs, ""); len(got) != 3 {
		t.Errorf("empty filter should pass everything, got %d", len(got))
	}
	if got := FilterByStatus(invs, domain.InvoiceOverdue); len(got) != 0 {
		t.Errorf("no overdue invoices expected, got %d", len(got))
	}
}

func TestAmountStats(t *testing.T) {
	invs := []domain.CrmInvoice{
		inv(1, 10000, domain.InvoicePaid),
		inv(2, 20000, domain.InvoicePending),
		inv(3, 60000, domain.InvoiceOverdue),
	}
	mean, median := AmountStats(invs)
	if mean != 30000 {
		t.Errorf("mean = %d, want 30000", mean)
	}
	if median != 20000 {
		t.Errorf("median = %d, want 20000", median)
	}

	mean, median = AmountStats(nil)
	if mean != 0 || median != 0 {
		t.Errorf("empty stats = %d/%d, want 0/0", mean, median)
	}
}
