package mainmodel

import (
	"time"

	"droppoint-partner-api/internal/revenue"
)

// PartnerRevenueConfig is the live revenue arrangement for one partner.
// Rules are a JSON column; every edit appends the outgoing rules to
// w_revenue_rule_history before the live row changes.
type PartnerRevenueConfig struct {
	ID              uint64           `gorm:"column:id;primaryKey;autoIncrement"`
	PartnerID       uint64           `gorm:"column:partner_id;uniqueIndex;not null"`
	ModelType       string           `gorm:"column:model_type;size:30;not null"`
	Rules           revenue.RuleSet  `gorm:"column:rules;type:json"`
	LockerOwner     string           `gorm:"column:locker_owner;size:10;default:platform"` // platform/partner/shared
	MaintenanceBy   string           `gorm:"column:maintenance_by;size:10;default:platform"`
	PayoutCycle     string           `gorm:"column:payout_cycle;size:10;default:monthly"` // daily/weekly/monthly
	AutoPayout      bool             `gorm:"column:auto_payout"`
	PayoutMethod    string           `gorm:"column:payout_method;size:30"`
	PayoutDelayDays int              `gorm:"column:payout_delay_days;default:7"`
	ChangedAt       time.Time        `gorm:"column:changed_at"`
	CreatedAt       time.Time        `gorm:"column:created_at"`
	UpdatedAt       time.Time        `gorm:"column:updated_at"`
}

func (PartnerRevenueConfig) TableName() string { return "w_partner_revenue" }

// RevenueRuleHistory is append-only: one row per rule change, holding the
// rules that were live until ChangedAt.
type RevenueRuleHistory struct {
	ID        uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	PartnerID uint64          `gorm:"column:partner_id;index;not null"`
	ModelType string          `gorm:"column:model_type;size:30;not null"`
	Rules     revenue.RuleSet `gorm:"column:rules;type:json"`
	ChangedAt time.Time       `gorm:"column:changed_at;not null"`
	ChangedBy string          `gorm:"column:changed_by;size:60"`
	Note      string          `gorm:"column:note;size:255"`
}

func (RevenueRuleHistory) TableName() string { return "w_revenue_rule_history" }
