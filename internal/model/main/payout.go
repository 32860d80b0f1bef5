package mainmodel

import (
	"time"

	"github.com/shopspring/decimal"
)

type PayoutBatch struct {
	BatchID    uint64          `gorm:"column:batch_id;primaryKey"`
	PartnerID  uint64          `gorm:"column:partner_id;index;not null"`
	EntryCount int             `gorm:"column:entry_count;not null"`
	Total      decimal.Decimal `gorm:"column:total;type:decimal(18,2);not null"`
	Currency   string          `gorm:"column:currency;size:10;not null"`
	CreatedAt  time.Time       `gorm:"column:created_at"`
}

func (PayoutBatch) TableName() string { return "w_payout_batch" }
