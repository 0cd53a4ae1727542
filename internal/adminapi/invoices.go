package adminapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/random"
	"gorm.io/gorm"

	"github.com/opsforge/fieldops/internal/app"
	"github.com/opsforge/fieldops/internal/billing"
	"github.com/opsforge/fieldops/internal/domain"
	"github.com/opsforge/fieldops/internal/webserver"
	"github.com/opsforge/fieldops/pkg/common"
)

type invoicePayload struct {
	CustomerID    int64  `json:"customer_id,string" validate:"required"`
	Amount        string `json:"amount" validate:"required"`
	Status        string `json:"status" validate:"omitempty,oneof=Pending Paid Overdue Cancelled"`
	DueDate       string `json:"due_date" validate:"omitempty"`
	InvoiceNumber string `json:"invoice_number" validate:"omitempty,max=32"`
}

func registerInvoiceRoutes() {
	webserver.ApiGET("/crm/invoices", listInvoices)
	webserver.ApiGET("/crm/invoices/summary", invoiceSummary)
	webserver.ApiGET("/crm/invoices/export", exportInvoices)
	webserver.ApiGET("/crm/invoices/:id", getInvoice)
	webserver.ApiPOST("/crm/invoices", createInvoice)
	webserver.ApiPUT("/crm/invoices/:id", updateInvoice)
	webserver.ApiDELETE("/crm/invoices/:id", deleteInvoice)
}

// queryInvoices loads the account's invoice snapshot newest first with the
// denormalized customer name. Orphaned invoices keep an empty name and
// render as "Unknown" downstream.
func queryInvoices(db *gorm.DB, uid int64) ([]domain.CrmInvoice, error) {
	var rows []domain.CrmInvoice
	err := db.Model(&domain.CrmInvoice{}).
		Select("crm_invoice.*, crm_customer.name AS customer_name").
		Joins("LEFT JOIN crm_customer ON crm_customer.id = crm_invoice.customer_id").
		Where("crm_invoice.user_id = ?", uid).
		Order("crm_invoice.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func listInvoices(c echo.Context) error {
	uid, _ := CurrentOperator(c)
	rows, err := queryInvoices(GetDB(c), uid)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query invoices", err.Error())
	}
	rows = billing.FilterByStatus(rows, strings.TrimSpace(c.QueryParam("status")))
	return ok(c, map[string]interface{}{"data": rows})
}

func invoiceSummary(c echo.Context) error {
	uid, _ := CurrentOperator(c)
	rows, err := queryInvoices(GetDB(c), uid)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query invoices", err.Error())
	}
	s := billing.Summarize(rows)
	mean, median := billing.AmountStats(rows)
	return ok(c, map[string]interface{}{
		"outstanding":   billing.FormatAmountGrouped(s.OutstandingCents),
		"paid":          billing.FormatAmountGrouped(s.PaidCents),
		"overdue_total": billing.FormatAmountGrouped(s.OverdueCents),
		"pending_count": s.PendingCount,
		"overdue_count": s.OverdueCount,
		"mean_amount":   billing.FormatAmount(mean),
		"median_amount": billing.FormatAmount(median),
		"summary":       s,
	})
}

func getInvoice(c echo.Context) error {
	uid, _ := CurrentOperator(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid invoice ID", nil)
	}
	var inv domain.CrmInvoice
	if err := GetDB(c).Where("id = ? AND user_id = ?", id, uid).First(&inv).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Invoice not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query invoice", err.Error())
	}
	return ok(c, inv)
}

// nextInvoiceNumber generates INV-#### and retries on collision within the
// account.
func nextInvoiceNumber(db *gorm.DB, uid int64) string {
	for i := 0; i < 10; i++ {
		num := "INV-" + random.String(4, random.Numeric)
		var count int64
		db.Model(&domain.CrmInvoice{}).Where("user_id = ? AND invoice_number = ?", uid, num).Count(&count)
		if count == 0 {
			return num
		}
	}
	// 4 digits exhausted for this account; fall back to a unique suffix
	return fmt.Sprintf("INV-%d", common.UUIDint64()%1000000)
}

func parseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func createInvoice(c echo.Context) error {
	uid, _ := CurrentOperator(c)
	var payload invoicePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse invoice", err.Error())
	}
	if payload.CustomerID == 0 || strings.TrimSpace(payload.Amount) == "" {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Customer and amount are required", nil)
	}

	cents, err := billing.ParseAmount(payload.Amount)
	if err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid amount", nil)
	}
	dueDate, err := parseDueDate(payload.DueDate)
	if err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Due date must be YYYY-MM-DD", nil)
	}

	if payload.Status == "" {
		payload.Status = domain.InvoicePending
	}
	number := strings.TrimSpace(payload.InvoiceNumber)
	if number == "" {
		number = nextInvoiceNumber(GetDB(c), uid)
	}

	now := time.Now()
	inv := domain.CrmInvoice{
		ID:            common.UUIDint64(),
		UserID:        uid,
		CustomerID:    payload.CustomerID,
		InvoiceNumber: number,
		AmountCents:   cents,
		Status:        payload.Status,
		DueDate:       dueDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := GetDB(c).Create(&inv).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create invoice", err.Error())
	}
	publishEvent(c, app.EvtInvoiceChanged, "invoice.create", inv.InvoiceNumber)
	return ok(c, inv)
}

func updateInvoice(c echo.Context) error {
	uid, _ := CurrentOperator(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid invoice ID", nil)
	}
	var inv domain.CrmInvoice
	if err := GetDB(c).Where("id = ? AND user_id = ?", id, uid).First(&inv).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Invoice not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query invoice", err.Error())
	}

	var payload invoicePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse invoice", err.Error())
	}

	if strings.TrimSpace(payload.Amount) != "" {
		cents, err := billing.ParseAmount(payload.Amount)
		if err != nil {
			return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid amount", nil)
		}
		inv.AmountCents = cents
	}
	// Partial update: an omitted or empty field keeps the stored value,
	// same as amount, status and customer. "none" clears the due date.
	switch strings.TrimSpace(payload.DueDate) {
	case "":
	case "none":
		inv.DueDate = nil
	default:
		dueDate, err := parseDueDate(payload.DueDate)
		if err != nil {
			return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Due date must be YYYY-MM-DD", nil)
		}
		inv.DueDate = dueDate
	}

	if payload.CustomerID != 0 {
		inv.CustomerID = payload.CustomerID
	}
	if payload.Status != "" {
		inv.Status = payload.Status
	}
	if n := strings.TrimSpace(payload.InvoiceNumber); n != "" {
		inv.InvoiceNumber = n
	}
	inv.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&inv).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update invoice", err.Error())
	}
	publishEvent(c, app.EvtInvoiceChanged, "invoice.update", inv.InvoiceNumber)
	return ok(c, inv)
}

func deleteInvoice(c echo.Context) error {
	uid, _ := CurrentOperator(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid invoice ID", nil)
	}
	if err := GetDB(c).Where("id = ? AND user_id = ?", id, uid).Delete(&domain.CrmInvoice{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete invoice", err.Error())
	}
	publishEvent(c, app.EvtInvoiceChanged, "invoice.delete", c.Param("id"))
	return ok(c, map[string]interface{}{"id": id})
}

// exportInvoices streams the filtered invoice list as CSV (default) or an
// XLSX workbook (?format=xlsx). An empty filtered set is an error, not an
// empty file.
func exportInvoices(c echo.Context) error {
	uid, _ := CurrentOperator(c)
	rows, err := queryInvoices(GetDB(c), uid)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query invoices", err.Error())
	}
	rows = billing.FilterByStatus(rows, strings.TrimSpace(c.QueryParam("status")))

	if c.QueryParam("format") == "xlsx" {
		return exportInvoicesXlsx(c, rows)
	}

	body, err := billing.ExportCSV(rows)
	if errors.Is(err, billing.ErrEmptyExport) {
		return fail(c, http.StatusBadRequest, "EMPTY_EXPORT", "No invoices to export", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to serialize invoices", err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", billing.ExportFilename(time.Now())))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(body))
}

func exportInvoicesXlsx(c echo.Context, rows []domain.CrmInvoice) error {
	if len(rows) == 0 {
		return fail(c, http.StatusBadRequest, "EMPTY_EXPORT", "No invoices to export", nil)
	}

	f := excelize.NewFile()
	headers := []string{"Invoice Number", "Customer", "Due Date", "Amount", "Status"}
	for i, h := range headers {
		f.SetCellValue("Sheet1", fmt.Sprintf("%c1", 'A'+i), h)
	}
	for i, inv := range rows {
		r := i + 2
		name := inv.CustomerName
		if name == "" {
			name = "Unknown"
		}
		due := common.NA
		if inv.DueDate != nil {
			due = inv.DueDate.Format("2006-01-02")
		}
		f.SetCellValue("Sheet1", fmt.Sprintf("A%d", r), inv.InvoiceNumber)
		f.SetCellValue("Sheet1", fmt.Sprintf("B%d", r), name)
		f.SetCellValue("Sheet1", fmt.Sprintf("C%d", r), due)
		f.SetCellValue("Sheet1", fmt.Sprintf("D%d", r), billing.FormatAmount(inv.AmountCents))
		f.SetCellValue("Sheet1", fmt.Sprintf("E%d", r), inv.Status)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", "invoices_export_"+time.Now().Format("2006-01-02")+".xlsx"))
	c.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response())
}
