package mainmodel

import (
	"time"

	"droppoint-partner-api/internal/revenue"

	"github.com/shopspring/decimal"
)

// Ledger entry kinds. Parcel entries come from the calculator; rent and
// guarantee entries come from the monthly accrual job.
const (
	EntryTypeParcel         int8 = 1
	EntryTypeRentAccrual    int8 = 2
	EntryTypeGuaranteeTopup int8 = 3
)

// RevenueLedgerEntry is one monetized event. Append-only: once written the
// only field that ever changes is the settled flag plus its batch id.
type RevenueLedgerEntry struct {
	EntryID       uint64           `gorm:"column:entry_id;primaryKey"`
	PartnerID     uint64           `gorm:"column:partner_id;index:idx_ledger_partner_settled;not null"`
	ParcelID      uint64           `gorm:"column:parcel_id;uniqueIndex;not null"`
	EntryType     int8             `gorm:"column:entry_type;not null;default:1"`
	GrossAmount   decimal.Decimal  `gorm:"column:gross_amount;type:decimal(18,2);not null"`
	PartnerShare  decimal.Decimal  `gorm:"column:partner_share;type:decimal(18,2);not null"`
	PlatformShare decimal.Decimal  `gorm:"column:platform_share;type:decimal(18,2);not null"`
	ModelTypeUsed string           `gorm:"column:model_type_used;size:30;not null"`
	Snapshot      revenue.RuleSet  `gorm:"column:calculation_snapshot;type:json"`
	Currency      string           `gorm:"column:currency;size:10;not null"`
	CalculatedAt  time.Time        `gorm:"column:calculated_at;index;not null"`
	Settled       bool             `gorm:"column:settled;index:idx_ledger_partner_settled"`
	PayoutBatchID *uint64          `gorm:"column:payout_batch_id;index"`
}

func (RevenueLedgerEntry) TableName() string { return "w_revenue_ledger" }
