package dao

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"droppoint-partner-api/internal/dal"
	mainmodel "droppoint-partner-api/internal/model/main"
)

type PartnerDao struct {
	DB *gorm.DB
}

func NewPartnerDao() *PartnerDao {
	if dal.MainDB == nil {
		log.Panic("[FATAL] dal.MainDB is nil - database not initialized")
	}
	return &PartnerDao{DB: dal.MainDB}
}

// NewPartnerDaoWithDB builds a dao over a caller-supplied handle (tx use).
func NewPartnerDaoWithDB(db *gorm.DB) *PartnerDao {
	if db == nil {
		log.Panic("[FATAL] db cannot be nil")
	}
	return &PartnerDao{DB: db}
}

func (r *PartnerDao) GetByID(id uint64) (*mainmodel.Partner, error) {
	var p mainmodel.Partner
	err := r.DB.Where("partner_id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query partner failed: %w", err)
	}
	return &p, nil
}

func (r *PartnerDao) GetByApiKey(apiKey string) (*mainmodel.Partner, error) {
	var p mainmodel.Partner
	err := r.DB.Where("api_key = ?", apiKey).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query partner by api key failed: %w", err)
	}
	return &p, nil
}

func (r *PartnerDao) GetByGoogleID(googleID string) (*mainmodel.Partner, error) {
	var p mainmodel.Partner
	err := r.DB.Where("google_id = ?", googleID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query partner by google id failed: %w", err)
	}
	return &p, nil
}

func (r *PartnerDao) GetByEmail(email string) (*mainmodel.Partner, error) {
	var p mainmodel.Partner
	err := r.DB.Where("email = ?", email).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query partner by email failed: %w", err)
	}
	return &p, nil
}

func (r *PartnerDao) BindGoogleID(partnerID uint64, googleID string) error {
	return r.DB.Model(&mainmodel.Partner{}).
		Where("partner_id = ?", partnerID).
		Update("google_id", googleID).Error
}

func (r *PartnerDao) ListLockers(partnerID uint64) ([]mainmodel.Locker, error) {
	var out []mainmodel.Locker
	if err := r.DB.Where("partner_id = ?", partnerID).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list lockers failed: %w", err)
	}
	return out, nil
}

func (r *PartnerDao) GetRevenueConfig(partnerID uint64) (*mainmodel.PartnerRevenueConfig, error) {
	var cfg mainmodel.PartnerRevenueConfig
	err := r.DB.Where("partner_id = ?", partnerID).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query revenue config failed: %w", err)
	}
	return &cfg, nil
}

// SwapRules appends the outgoing rules to history and replaces the live
// rules in one transaction. The history row is stamped with the moment the
// outgoing rules stopped being active.
func (r *PartnerDao) SwapRules(cfg *mainmodel.PartnerRevenueConfig, hist *mainmodel.RevenueRuleHistory) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(hist).Error; err != nil {
			return err
		}
		return tx.Model(&mainmodel.PartnerRevenueConfig{}).
			Where("partner_id = ?", cfg.PartnerID).
			Updates(map[string]interface{}{
				"model_type": cfg.ModelType,
				"rules":      cfg.Rules,
				"changed_at": time.Now(),
			}).Error
	})
}

func (r *PartnerDao) ListRuleHistory(partnerID uint64) ([]mainmodel.RevenueRuleHistory, error) {
	var out []mainmodel.RevenueRuleHistory
	if err := r.DB.Where("partner_id = ?", partnerID).Order("changed_at asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list rule history failed: %w", err)
	}
	return out, nil
}
