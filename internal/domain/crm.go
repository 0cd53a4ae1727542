package domain

import "time"

// CRM module related models

// Customer status values
const (
	CustomerActive   = "Active"
	CustomerInactive = "Inactive"
	CustomerLead     = "Lead"
)

// Appointment status values
const (
	AppointmentScheduled  = "Scheduled"
	AppointmentInProgress = "In Progress"
	AppointmentCompleted  = "Completed"
	AppointmentCancelled  = "Cancelled"
)

// Invoice status values
const (
	InvoicePending   = "Pending"
	InvoicePaid      = "Paid"
	InvoiceOverdue   = "Overdue"
	InvoiceCancelled = "Cancelled"
)

// CrmCustomer field-service customer record
type CrmCustomer struct {
	ID        int64     `json:"id,string" form:"id"`
	UserID    int64     `gorm:"index" json:"user_id,string" form:"user_id"` // Owning operator ID
	Name      string    `gorm:"index" json:"name" form:"name"`
	Email     string    `json:"email" form:"email"`
	Phone     string    `json:"phone" form:"phone"`
	Address   string    `json:"address" form:"address"`
	Status    string    `gorm:"size:32" json:"status" form:"status"` // Active / Inactive / Lead
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (CrmCustomer) TableName() string {
	return "crm_customer"
}

// CrmAppointment scheduled field-service job. ScheduledAt is stored as an
// absolute instant (UTC); Duration is display text, not a parseable interval.
type CrmAppointment struct {
	ID             int64     `json:"id,string" form:"id"`
	UserID         int64     `gorm:"index" json:"user_id,string" form:"user_id"`
	CustomerID     int64     `gorm:"index" json:"customer_id,string" form:"customer_id"`
	ScheduledAt    time.Time `gorm:"index" json:"scheduled_at" form:"scheduled_at"`
	Duration       string    `gorm:"size:64" json:"duration" form:"duration"` // e.g. "2 hours"
	JobType        string    `json:"job_type" form:"job_type"`
	TechnicianName string    `json:"technician_name" form:"technician_name"`
	Status         string    `gorm:"size:32" json:"status" form:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Denormalized customer fields filled by list queries, empty when the
	// customer has been deleted (orphaned appointments stay visible).
	CustomerName    string `gorm:"-" json:"customer_name"`
	CustomerAddress string `gorm:"-" json:"customer_address"`
}

// TableName Specify table name
func (CrmAppointment) TableName() string {
	return "crm_appointment"
}

// CrmInvoice billing record. AmountCents keeps currency exact; formatting
// happens only at the output edge.
type CrmInvoice struct {
	ID            int64      `json:"id,string" form:"id"`
	UserID        int64      `gorm:"index" json:"user_id,string" form:"user_id"`
	CustomerID    int64      `gorm:"index" json:"customer_id,string" form:"customer_id"`
	InvoiceNumber string     `gorm:"index;size:32" json:"invoice_number" form:"invoice_number"`
	AmountCents   int64      `json:"amount_cents" form:"amount_cents"`
	Status        string     `gorm:"size:32" json:"status" form:"status"`
	DueDate       *time.Time `json:"due_date" form:"due_date"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	CustomerName string `gorm:"-" json:"customer_name"`
}

// TableName Specify table name
func (CrmInvoice) TableName() string {
	return "crm_invoice"
}

// CrmSettings one-per-operator business settings
type CrmSettings struct {
	ID              int64     `json:"id,string" form:"id"`
	UserID          int64     `gorm:"uniqueIndex" json:"user_id,string" form:"user_id"`
	CompanyName     string    `json:"company_name" form:"company_name"`
	BusinessAddress string    `json:"business_address" form:"business_address"`
	ServiceAreas    string    `json:"service_areas" form:"service_areas"` // comma separated
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName Specify table name
func (CrmSettings) TableName() string {
	return "crm_settings"
}
