package dto

import (
	"time"

	"droppoint-partner-api/internal/revenue"
)

type UpdateRulesReq struct {
	Rules     revenue.RuleSet `json:"rules" binding:"required"`
	ChangedBy string          `json:"changed_by" binding:"required"`
	Note      string          `json:"note"`
}

type RuleHistoryVO struct {
	ModelType string          `json:"model_type"`
	Rules     revenue.RuleSet `json:"rules"`
	ChangedAt time.Time       `json:"changed_at"`
	ChangedBy string          `json:"changed_by"`
	Note      string          `json:"note"`
}
