package mainmodel

import (
	"time"

	"github.com/shopspring/decimal"
)

// RevenueStats is the denormalized rolling aggregate per partner. Version
// guards every write: updates carry WHERE version = ? and bump it, so
// concurrent increments for one partner serialize instead of clobbering.
type RevenueStats struct {
	PartnerID          uint64          `gorm:"column:partner_id;primaryKey"`
	TotalGross         decimal.Decimal `gorm:"column:total_gross;type:decimal(18,2);not null"`
	TotalPartnerEarned decimal.Decimal `gorm:"column:total_partner_earned;type:decimal(18,2);not null"`
	TotalPlatformEarned decimal.Decimal `gorm:"column:total_platform_earned;type:decimal(18,2);not null"`
	PendingPayout      decimal.Decimal `gorm:"column:pending_payout;type:decimal(18,2);not null"`
	PaidOut            decimal.Decimal `gorm:"column:paid_out;type:decimal(18,2);not null"`
	LastPayoutDate     *time.Time      `gorm:"column:last_payout_date"`
	LastCalculatedAt   *time.Time      `gorm:"column:last_calculated_at"`
	Version            uint64          `gorm:"column:version;not null;default:0"`
}

func (RevenueStats) TableName() string { return "w_revenue_stats" }
