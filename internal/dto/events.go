package dto

// MQ payloads on the revenue_events exchange.

type LedgerCreatedEvent struct {
	EntryID       uint64 `json:"entry_id"`
	PartnerID     uint64 `json:"partner_id"`
	ParcelID      uint64 `json:"parcel_id"`
	GrossAmount   string `json:"gross_amount"`
	PartnerShare  string `json:"partner_share"`
	PlatformShare string `json:"platform_share"`
	ModelTypeUsed string `json:"model_type_used"`
	Currency      string `json:"currency"`
	CreatedAt     int64  `json:"created_at"`
}

type PayoutBatchEvent struct {
	BatchID    uint64 `json:"batch_id"`
	PartnerID  uint64 `json:"partner_id"`
	EntryCount int    `json:"entry_count"`
	Total      string `json:"total"`
	Currency   string `json:"currency"`
	CreatedAt  int64  `json:"created_at"`
	RetryCount int    `json:"retry_count"`
}
