package eventmodel

import (
	"time"

	"github.com/shopspring/decimal"
)

// ParcelEvent rows live in monthly CRC32-sharded tables
// (p_parcel_event_YYYYMM_pN); callers always address them through
// shard.Table / shard.AllTables, so there is no TableName here.
type ParcelEvent struct {
	EventID    uint64          `gorm:"column:event_id;primaryKey"`
	ParcelID   uint64          `gorm:"column:parcel_id;index"`
	LockerID   uint64          `gorm:"column:locker_id;index"`
	PartnerID  uint64          `gorm:"column:partner_id;index"`
	Kind       string          `gorm:"column:kind;size:20"` // deposit/pickup/open
	Amount     decimal.Decimal `gorm:"column:amount;type:decimal(18,2)"`
	OccurredAt time.Time       `gorm:"column:occurred_at;index"`
}
