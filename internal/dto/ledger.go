package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type AppendEntryReq struct {
	PartnerID   uint64          `json:"partner_id" binding:"required"`
	ParcelID    uint64          `json:"parcel_id" binding:"required"`
	LockerID    uint64          `json:"locker_id"`
	GrossAmount decimal.Decimal `json:"gross_amount"`
	EventCount  int64           `json:"event_count"`
	OpenCount   int64           `json:"open_count"`
	Currency    string          `json:"currency"`
}

type LedgerEntryVO struct {
	EntryID       uint64          `json:"entry_id"`
	PartnerID     uint64          `json:"partner_id"`
	ParcelID      uint64          `json:"parcel_id"`
	EntryType     int8            `json:"entry_type"`
	GrossAmount   decimal.Decimal `json:"gross_amount"`
	PartnerShare  decimal.Decimal `json:"partner_share"`
	PlatformShare decimal.Decimal `json:"platform_share"`
	ModelTypeUsed string          `json:"model_type_used"`
	Currency      string          `json:"currency"`
	CalculatedAt  time.Time       `json:"calculated_at"`
	Settled       bool            `json:"settled"`
	PayoutBatchID *uint64         `json:"payout_batch_id,omitempty"`
}
