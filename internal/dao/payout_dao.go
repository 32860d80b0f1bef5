package dao

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"droppoint-partner-api/internal/dal"
	mainmodel "droppoint-partner-api/internal/model/main"
)

type PayoutDao struct {
	DB *gorm.DB
}

func NewPayoutDao() *PayoutDao {
	if dal.MainDB == nil {
		log.Panic("[FATAL] dal.MainDB is nil - database not initialized")
	}
	return &PayoutDao{DB: dal.MainDB}
}

func NewPayoutDaoWithDB(db *gorm.DB) *PayoutDao {
	if db == nil {
		log.Panic("[FATAL] db cannot be nil")
	}
	return &PayoutDao{DB: db}
}

func (r *PayoutDao) Insert(b *mainmodel.PayoutBatch) error {
	return r.DB.Create(b).Error
}

func (r *PayoutDao) GetByID(batchID uint64) (*mainmodel.PayoutBatch, error) {
	var b mainmodel.PayoutBatch
	err := r.DB.Where("batch_id = ?", batchID).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query payout batch failed: %w", err)
	}
	return &b, nil
}

func (r *PayoutDao) ListByPartner(partnerID uint64) ([]mainmodel.PayoutBatch, error) {
	var out []mainmodel.PayoutBatch
	if err := r.DB.Where("partner_id = ?", partnerID).Order("created_at desc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list payout batches failed: %w", err)
	}
	return out, nil
}
