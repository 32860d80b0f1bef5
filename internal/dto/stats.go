package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type StatsVO struct {
	PartnerID           uint64          `json:"partner_id"`
	TotalGross          decimal.Decimal `json:"total_gross"`
	TotalPartnerEarned  decimal.Decimal `json:"total_partner_earned"`
	TotalPlatformEarned decimal.Decimal `json:"total_platform_earned"`
	PendingPayout       decimal.Decimal `json:"pending_payout"`
	PaidOut             decimal.Decimal `json:"paid_out"`
	LastPayoutDate      *time.Time      `json:"last_payout_date,omitempty"`
	LastCalculatedAt    *time.Time      `json:"last_calculated_at,omitempty"`
}

type DashboardVO struct {
	PartnerName      string          `json:"partner_name"`
	PropertyType     string          `json:"property_type"`
	Verification     string          `json:"verification_status"`
	Lockers          []LockerVO      `json:"lockers"`
	Stats            StatsVO         `json:"stats"`
	ParcelCount      int64           `json:"parcel_count"`
	AvgPerLocker     decimal.Decimal `json:"avg_per_locker"`
	AnnualProjection decimal.Decimal `json:"annual_projection"`
}

type LockerVO struct {
	LockerID uint64 `json:"locker_id"`
	Code     string `json:"code"`
	Address  string `json:"address"`
	Doors    int    `json:"doors"`
	Status   int8   `json:"status"`
}
