package adminapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/opsforge/fieldops/internal/app"
	"github.com/opsforge/fieldops/internal/domain"
	"github.com/opsforge/fieldops/internal/webserver"
	"github.com/opsforge/fieldops/pkg/common"
)

type customerPayload struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"omitempty,max=64"`
	Address string `json:"address" validate:"omitempty,max=500"`
	Status  string `json:"status" validate:"omitempty,oneof=Active Inactive Lead"`
}

func registerCustomerRoutes() {
	webserver.ApiGET("/crm/customers", listCustomers)
	webserver.ApiGET("/crm/customers/export", exportCustomers)
	webserver.ApiGET("/crm/customers/:id", getCustomer)
	webserver.ApiPOST("/crm/customers", createCustomer)
	webserver.ApiPUT("/crm/customers/:id", updateCustomer)
	webserver.ApiDELETE("/crm/customers/:id", deleteCustomer)
}

func listCustomers(c echo.Context) error {
	uid, _ := CurrentOperator(c)
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.CrmCustomer{}).Where("user_id = ?", uid)

	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		if strings.EqualFold(db.Name(), "postgres") {
			db = db.Where("name ILIKE ?", "%"+q+"%")
		} else {
			db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
		}
	}
	if status := strings.TrimSpace(c.QueryParam("status")); status != "" {
		db = db.Where("status = ?", status)
	}

	order := "created_at DESC"
	switch c.QueryParam("sort") {
	case "name":
		order = "name ASC"
	case "status":
		order = "status ASC, name ASC"
	case "created_at":
		order = "created_at DESC"
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query customers", err.Error())
	}

	var rows []domain.CrmCustomer
	if err := db.Order(order).Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query customers", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getCustomer(c echo.Context) error {
	uid, _ := CurrentOperator(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid customer ID", nil)
	}
	var cu domain.CrmCustomer
	if err := GetDB(c).Where("id = ? AND user_id = ?", id, uid).First(&cu).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Customer not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query customer", err.Error())
	}
	return ok(c, cu)
}

func createCustomer(c echo.Context) error {
	uid, _ := CurrentOperator(c)
	var payload customerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse customer", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Customer name is required", nil)
	}
	if payload.Status == "" {
		payload.Status = domain.CustomerActive
	}

	now := time.Now()
	cu := domain.CrmCustomer{
		ID:        common.UUIDint64(),
		UserID:    uid,
		Name:      payload.Name,
		Email:     strings.TrimSpace(payload.Email),
		Phone:     strings.TrimSpace(payload.Phone),
		Address:   strings.TrimSpace(payload.Address),
		Status:    payload.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := GetDB(c).Create(&cu).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create customer", err.Error())
	}
	publishEvent(c, app.EvtCustomerChanged, "customer.create", cu.Name)
	return ok(c, cu)
}

func updateCustomer(c echo.Context) error {
	uid, _ := CurrentOperator(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid customer ID", nil)
	}
	var cu domain.CrmCustomer
	if err := GetDB(c).Where("id = ? AND user_id = ?", id, uid).First(&cu).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Customer not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query customer", err.Error())
	}

	var payload customerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse customer", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Customer name is required", nil)
	}

	cu.Name = payload.Name
	cu.Email = strings.TrimSpace(payload.Email)
	cu.Phone = strings.TrimSpace(payload.Phone)
	cu.Address = strings.TrimSpace(payload.Address)
	if payload.Status != "" {
		cu.Status = payload.Status
	}
	cu.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&cu).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update customer", err.Error())
	}
	publishEvent(c, app.EvtCustomerChanged, "customer.update", cu.Name)
	return ok(c, cu)
}

// deleteCustomer removes the record unconditionally. Appointments and
// invoices that reference it stay behind and render as "Unknown".
func deleteCustomer(c echo.Context) error {
	uid, _ := CurrentOperator(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid customer ID", nil)
	}
	if err := GetDB(c).Where("id = ? AND user_id = ?", id, uid).Delete(&domain.CrmCustomer{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete customer", err.Error())
	}
	publishEvent(c, app.EvtCustomerChanged, "customer.delete", c.Param("id"))
	return ok(c, map[string]interface{}{"id": id})
}

type customerCsvRow struct {
	Name    string `csv:"Name"`
	Email   string `csv:"Email"`
	Phone   string `csv:"Phone"`
	Address string `csv:"Address"`
	Status  string `csv:"Status"`
}

func exportCustomers(c echo.Context) error {
	uid, _ := CurrentOperator(c)
	var customers []domain.CrmCustomer
	if err := GetDB(c).Where("user_id = ?", uid).Order("name ASC").Find(&customers).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query customers", err.Error())
	}
	if len(customers) == 0 {
		return fail(c, http.StatusBadRequest, "EMPTY_EXPORT", "No customers to export", nil)
	}

	rows := make([]customerCsvRow, 0, len(customers))
	for _, cu := range customers {
		rows = append(rows, customerCsvRow{
			Name:    cu.Name,
			Email:   cu.Email,
			Phone:   cu.Phone,
			Address: cu.Address,
			Status:  cu.Status,
		})
	}
	body, err := gocsv.MarshalString(&rows)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to serialize customers", err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="customers_export.csv"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(body))
}
