package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type RunPayoutReq struct {
	AsOf *time.Time `json:"as_of"`
}

type PayoutBatchVO struct {
	BatchID    uint64          `json:"batch_id"`
	PartnerID  uint64          `json:"partner_id"`
	EntryCount int             `json:"entry_count"`
	Total      decimal.Decimal `json:"total"`
	Currency   string          `json:"currency"`
	CreatedAt  time.Time       `json:"created_at"`
}
