package service

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"droppoint-partner-api/internal/config"
	"droppoint-partner-api/internal/dal"
	"droppoint-partner-api/internal/dao"
	mainmodel "droppoint-partner-api/internal/model/main"
	"droppoint-partner-api/internal/revenue"
)

type RuleService struct {
	db     *gorm.DB
	strict bool
}

func NewRuleService() *RuleService {
	return NewRuleServiceWithDB(dal.MainDB)
}

func NewRuleServiceWithDB(db *gorm.DB) *RuleService {
	return &RuleService{db: db, strict: config.C.Revenue.StrictShareSplit}
}

// GetActiveRules returns the rule set currently applied to new ledger
// entries for the partner.
func (s *RuleService) GetActiveRules(partnerID uint64) (*revenue.RuleSet, error) {
	cfg, err := dao.NewPartnerDaoWithDB(s.db).GetRevenueConfig(partnerID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("no revenue config for partner %d", partnerID)
	}
	rules := cfg.Rules.Clone()
	return &rules, nil
}

// UpdateRules validates the incoming rule set, snapshots the outgoing one
// into history and swaps the live rules, atomically. History is append-only;
// nothing here ever touches existing ledger entries.
func (s *RuleService) UpdateRules(partnerID uint64, newRules revenue.RuleSet, changedBy, note string) error {
	if err := newRules.Validate(revenue.ValidateOptions{StrictShareSplit: s.strict}); err != nil {
		return err
	}

	d := dao.NewPartnerDaoWithDB(s.db)
	cfg, err := d.GetRevenueConfig(partnerID)
	if err != nil {
		return err
	}
	if cfg == nil {
		return fmt.Errorf("no revenue config for partner %d", partnerID)
	}

	hist := &mainmodel.RevenueRuleHistory{
		PartnerID: partnerID,
		ModelType: cfg.ModelType,
		Rules:     cfg.Rules.Clone(),
		ChangedAt: time.Now(),
		ChangedBy: changedBy,
		Note:      note,
	}
	cfg.ModelType = string(newRules.ModelType)
	cfg.Rules = newRules
	return d.SwapRules(cfg, hist)
}

func (s *RuleService) History(partnerID uint64) ([]mainmodel.RevenueRuleHistory, error) {
	return dao.NewPartnerDaoWithDB(s.db).ListRuleHistory(partnerID)
}
