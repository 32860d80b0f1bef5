package mainmodel

import "time"

const (
	HostingStatusSubmitted = "submitted"
	HostingStatusReviewing = "reviewing"
	HostingStatusApproved  = "approved"
	HostingStatusRejected  = "rejected"
)

// HostingRequest is an onboarding application from a prospective partner.
type HostingRequest struct {
	RequestID    uint64     `gorm:"column:request_id;primaryKey"`
	CompanyName  string     `gorm:"column:company_name;size:100;not null"`
	PropertyType string     `gorm:"column:property_type;size:20;not null"` // residential/retail/office/other
	ContactName  string     `gorm:"column:contact_name;size:60;not null"`
	Email        string     `gorm:"column:email;size:120;index;not null"`
	Phone        string     `gorm:"column:phone;size:20;not null"`
	Message      string     `gorm:"column:message;size:2000;not null"`
	Status       string     `gorm:"column:status;size:15;index;default:submitted"`
	AdminNotes   string     `gorm:"column:admin_notes;size:2000"`
	ReviewedAt   *time.Time `gorm:"column:reviewed_at"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (HostingRequest) TableName() string { return "w_hosting_request" }
