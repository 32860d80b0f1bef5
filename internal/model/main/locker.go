package mainmodel

import "time"

type Locker struct {
	LockerID  uint64    `gorm:"column:locker_id;primaryKey"`
	PartnerID uint64    `gorm:"column:partner_id;index"`
	Code      string    `gorm:"column:code;size:30;uniqueIndex;not null"`
	Address   string    `gorm:"column:address;size:255"`
	Doors     int       `gorm:"column:doors"`
	Status    int8      `gorm:"column:status;default:1"` // 1 live, 0 offline
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Locker) TableName() string { return "w_locker" }
