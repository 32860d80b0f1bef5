package mainmodel

import "time"

// Ticket enums mirror the partner portal form options.
const (
	TicketTypeDeployment  = "locker_deployment"
	TicketTypeCreation    = "locker_creation"
	TicketTypeMaintenance = "maintenance"
	TicketTypeRepair      = "repair"
	TicketTypeUpgrade     = "upgrade"
)

type PartnerTicket struct {
	TicketID    uint64    `gorm:"column:ticket_id;primaryKey"`
	PartnerID   uint64    `gorm:"column:partner_id;index;not null"`
	Type        string    `gorm:"column:type;size:30;not null"`
	Title       string    `gorm:"column:title;size:120;not null"`
	Description string    `gorm:"column:description;size:2000;not null"`
	Priority    string    `gorm:"column:priority;size:10;default:medium"` // low/medium/high
	Status      string    `gorm:"column:status;size:15;index;default:open"` // open/in_progress/resolved/closed
	LockerID    *uint64   `gorm:"column:locker_id"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (PartnerTicket) TableName() string { return "w_partner_ticket" }
