package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&SysOpr{},
	&SysOprLog{},
	// CRM
	&CrmCustomer{},
	&CrmAppointment{},
	&CrmInvoice{},
	&CrmSettings{},
}
