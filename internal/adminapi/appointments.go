package adminapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/opsforge/fieldops/internal/app"
	"github.com/opsforge/fieldops/internal/domain"
	"github.com/opsforge/fieldops/internal/schedule"
	"github.com/opsforge/fieldops/internal/webserver"
	"github.com/opsforge/fieldops/pkg/common"
)

type appointmentPayload struct {
	CustomerID     int64  `json:"customer_id,string" validate:"required"`
	ScheduledTime  string `json:"scheduled_time" validate:"required"`
	Duration       string `json:"duration" validate:"omitempty,max=64"`
	JobType        string `json:"job_type" validate:"omitempty,max=200"`
	TechnicianName string `json:"technician_name" validate:"omitempty,max=200"`
	Status         string `json:"status" validate:"omitempty,oneof=Scheduled 'In Progress' Completed Cancelled"`
}

func registerAppointmentRoutes() {
	webserver.ApiGET("/crm/appointments", listAppointments)
	webserver.ApiGET("/crm/appointments/calendar", calendarAppointments)
	webserver.ApiGET("/crm/appointments/:id", getAppointment)
	webserver.ApiPOST("/crm/appointments", createAppointment)
	webserver.ApiPUT("/crm/appointments/:id", updateAppointment)
	webserver.ApiDELETE("/crm/appointments/:id", deleteAppointment)
}

// queryAppointments loads the account's appointment snapshot ordered by
// scheduled time, with denormalized customer name/address. A left join
// keeps orphaned appointments visible.
func queryAppointments(db *gorm.DB, uid int64) ([]domain.CrmAppointment, error) {
	var rows []domain.CrmAppointment
	err := db.Model(&domain.CrmAppointment{}).
		Select("crm_appointment.*, crm_customer.name AS customer_name, crm_customer.address AS customer_address").
		Joins("LEFT JOIN crm_customer ON crm_customer.id = crm_appointment.customer_id").
		Where("crm_appointment.user_id = ?", uid).
		Order("crm_appointment.scheduled_at ASC").
		Scan(&rows).Error
	return rows, err
}

func listAppointments(c echo.Context) error {
	uid, _ := CurrentOperator(c)
	rows, err := queryAppointments(GetDB(c), uid)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query appointments", err.Error())
	}
	return ok(c, map[string]interface{}{
		"data":        rows,
		"technicians": schedule.Technicians(rows),
	})
}

// calendarAppointments filters the snapshot to the requested day, week or
// month, preserving scheduled order.
func calendarAppointments(c echo.Context) error {
	uid, _ := CurrentOperator(c)

	mode := schedule.ViewMode(strings.TrimSpace(c.QueryParam("mode")))
	if mode == "" {
		mode = schedule.ModeDay
	}
	if !mode.Valid() {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Mode must be day, week or month", nil)
	}

	ref := time.Now()
	if d := strings.TrimSpace(c.QueryParam("date")); d != "" {
		parsed, err := time.ParseInLocation("2006-01-02", d, time.Local)
		if err != nil {
			return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Date must be YYYY-MM-DD", nil)
		}
		ref = parsed
	}

	rows, err := queryAppointments(GetDB(c), uid)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query appointments", err.Error())
	}
	return ok(c, map[string]interface{}{
		"data": schedule.FilterAppointments(rows, ref, mode),
		"mode": mode,
		"date": ref.Format("2006-01-02"),
	})
}

func getAppointment(c echo.Context) error {
	uid, _ := CurrentOperator(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid appointment ID", nil)
	}
	var a domain.CrmAppointment
	if err := GetDB(c).Where("id = ? AND user_id = ?", id, uid).First(&a).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Appointment not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query appointment", err.Error())
	}
	return ok(c, a)
}

func createAppointment(c echo.Context) error {
	uid, _ := CurrentOperator(c)
	var payload appointmentPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse appointment", err.Error())
	}
	if payload.CustomerID == 0 || strings.TrimSpace(payload.ScheduledTime) == "" {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Customer and scheduled time are required", nil)
	}

	scheduledAt, err := schedule.ParseScheduledTime(payload.ScheduledTime)
	if err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date format", nil)
	}

	if payload.Duration == "" {
		payload.Duration = GetAppContext(c).GetSettingsStringValue("system", "default_duration")
		if payload.Duration == "" {
			payload.Duration = "1 hour"
		}
	}
	if payload.Status == "" {
		payload.Status = domain.AppointmentScheduled
	}

	now := time.Now()
	a := domain.CrmAppointment{
		ID:             common.UUIDint64(),
		UserID:         uid,
		CustomerID:     payload.CustomerID,
		ScheduledAt:    scheduledAt,
		Duration:       payload.Duration,
		JobType:        strings.TrimSpace(payload.JobType),
		TechnicianName: strings.TrimSpace(payload.TechnicianName),
		Status:         payload.Status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := GetDB(c).Create(&a).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create appointment", err.Error())
	}
	publishEvent(c, app.EvtAppointmentChanged, "appointment.create", a.JobType)
	return ok(c, a)
}

func updateAppointment(c echo.Context) error {
	uid, _ := CurrentOperator(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid appointment ID", nil)
	}
	var a domain.CrmAppointment
	if err := GetDB(c).Where("id = ? AND user_id = ?", id, uid).First(&a).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Appointment not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query appointment", err.Error())
	}

	var payload appointmentPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse appointment", err.Error())
	}

	scheduledAt, err := schedule.ParseScheduledTime(payload.ScheduledTime)
	if err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date format", nil)
	}

	if payload.CustomerID != 0 {
		a.CustomerID = payload.CustomerID
	}
	a.ScheduledAt = scheduledAt
	if payload.Duration != "" {
		a.Duration = payload.Duration
	}
	a.JobType = strings.TrimSpace(payload.JobType)
	a.TechnicianName = strings.TrimSpace(payload.TechnicianName)
	if payload.Status != "" {
		a.Status = payload.Status
	}
	a.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&a).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update appointment", err.Error())
	}
	publishEvent(c, app.EvtAppointmentChanged, "appointment.update", a.JobType)
	return ok(c, a)
}

func deleteAppointment(c echo.Context) error {
	uid, _ := CurrentOperator(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid appointment ID", nil)
	}
	if err := GetDB(c).Where("id = ? AND user_id = ?", id, uid).Delete(&domain.CrmAppointment{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete appointment", err.Error())
	}
	publishEvent(c, app.EvtAppointmentChanged, "appointment.delete", c.Param("id"))
	return ok(c, map[string]interface{}{"id": id})
}
