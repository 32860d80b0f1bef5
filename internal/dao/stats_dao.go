package dao

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"droppoint-partner-api/internal/dal"
	mainmodel "droppoint-partner-api/internal/model/main"
)

type StatsDao struct {
	DB *gorm.DB
}

func NewStatsDao() *StatsDao {
	if dal.MainDB == nil {
		log.Panic("[FATAL] dal.MainDB is nil - database not initialized")
	}
	return &StatsDao{DB: dal.MainDB}
}

func NewStatsDaoWithDB(db *gorm.DB) *StatsDao {
	if db == nil {
		log.Panic("[FATAL] db cannot be nil")
	}
	return &StatsDao{DB: db}
}

func (r *StatsDao) Get(partnerID uint64) (*mainmodel.RevenueStats, error) {
	var s mainmodel.RevenueStats
	err := r.DB.Where("partner_id = ?", partnerID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query stats failed: %w", err)
	}
	return &s, nil
}

func (r *StatsDao) Create(s *mainmodel.RevenueStats) error {
	return r.DB.Create(s).Error
}

// UpdateCAS writes the full aggregate guarded by the version the caller
// read. Returns false when another writer bumped the version first.
func (r *StatsDao) UpdateCAS(s *mainmodel.RevenueStats, readVersion uint64) (bool, error) {
	res := r.DB.Model(&mainmodel.RevenueStats{}).
		Where("partner_id = ? AND version = ?", s.PartnerID, readVersion).
		Updates(map[string]interface{}{
			"total_gross":           s.TotalGross,
			"total_partner_earned":  s.TotalPartnerEarned,
			"total_platform_earned": s.TotalPlatformEarned,
			"pending_payout":        s.PendingPayout,
			"paid_out":              s.PaidOut,
			"last_payout_date":      s.LastPayoutDate,
			"last_calculated_at":    s.LastCalculatedAt,
			"version":               readVersion + 1,
		})
	if res.Error != nil {
		return false, fmt.Errorf("stats cas update failed: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// Replace overwrites the aggregate unconditionally (recovery path only).
func (r *StatsDao) Replace(s *mainmodel.RevenueStats) error {
	return r.DB.Model(&mainmodel.RevenueStats{}).
		Where("partner_id = ?", s.PartnerID).
		Updates(map[string]interface{}{
			"total_gross":           s.TotalGross,
			"total_partner_earned":  s.TotalPartnerEarned,
			"total_platform_earned": s.TotalPlatformEarned,
			"pending_payout":        s.PendingPayout,
			"paid_out":              s.PaidOut,
			"last_payout_date":      s.LastPayoutDate,
			"last_calculated_at":    s.LastCalculatedAt,
			"version":               gorm.Expr("version + 1"),
		}).Error
}
