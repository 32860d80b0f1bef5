package dao

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"droppoint-partner-api/internal/dal"
	mainmodel "droppoint-partner-api/internal/model/main"
)

type LedgerDao struct {
	DB *gorm.DB
}

func NewLedgerDao() *LedgerDao {
	if dal.MainDB == nil {
		log.Panic("[FATAL] dal.MainDB is nil - database not initialized")
	}
	return &LedgerDao{DB: dal.MainDB}
}

func NewLedgerDaoWithDB(db *gorm.DB) *LedgerDao {
	if db == nil {
		log.Panic("[FATAL] db cannot be nil")
	}
	return &LedgerDao{DB: db}
}

func (r *LedgerDao) Insert(e *mainmodel.RevenueLedgerEntry) error {
	return r.DB.Create(e).Error
}

func (r *LedgerDao) GetByParcelID(parcelID uint64) (*mainmodel.RevenueLedgerEntry, error) {
	var e mainmodel.RevenueLedgerEntry
	err := r.DB.Where("parcel_id = ?", parcelID).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query ledger by parcel failed: %w", err)
	}
	return &e, nil
}

func (r *LedgerDao) GetByID(entryID uint64) (*mainmodel.RevenueLedgerEntry, error) {
	var e mainmodel.RevenueLedgerEntry
	err := r.DB.Where("entry_id = ?", entryID).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query ledger entry failed: %w", err)
	}
	return &e, nil
}

// ListUnsettledBefore returns unsettled entries calculated before the
// cutoff, oldest first.
func (r *LedgerDao) ListUnsettledBefore(partnerID uint64, cutoff time.Time) ([]mainmodel.RevenueLedgerEntry, error) {
	var out []mainmodel.RevenueLedgerEntry
	err := r.DB.
		Where("partner_id = ? AND settled = ? AND calculated_at < ?", partnerID, false, cutoff).
		Order("calculated_at asc").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list unsettled failed: %w", err)
	}
	return out, nil
}

func (r *LedgerDao) ListByPartner(partnerID uint64) ([]mainmodel.RevenueLedgerEntry, error) {
	var out []mainmodel.RevenueLedgerEntry
	if err := r.DB.Where("partner_id = ?", partnerID).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list ledger failed: %w", err)
	}
	return out, nil
}

// SumPartnerShareSince totals partner earnings from entries calculated at
// or after since. Used for cap bookkeeping and guarantee shortfall math.
func (r *LedgerDao) SumPartnerShareSince(partnerID uint64, since time.Time, entryTypes []int8) (decimal.Decimal, error) {
	var raw decimal.NullDecimal
	q := r.DB.Model(&mainmodel.RevenueLedgerEntry{}).
		Select("SUM(partner_share)").
		Where("partner_id = ? AND calculated_at >= ?", partnerID, since)
	if len(entryTypes) > 0 {
		q = q.Where("entry_type IN ?", entryTypes)
	}
	if err := q.Scan(&raw).Error; err != nil {
		return decimal.Zero, fmt.Errorf("sum partner share failed: %w", err)
	}
	if !raw.Valid {
		return decimal.Zero, nil
	}
	return raw.Decimal, nil
}

// HasEntryOfTypeInMonth reports whether an accrual entry of the given type
// already exists for the partner in the month containing ts.
func (r *LedgerDao) HasEntryOfTypeInMonth(partnerID uint64, entryType int8, ts time.Time) (bool, error) {
	monthStart := time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, ts.Location())
	next := monthStart.AddDate(0, 1, 0)
	var n int64
	err := r.DB.Model(&mainmodel.RevenueLedgerEntry{}).
		Where("partner_id = ? AND entry_type = ? AND calculated_at >= ? AND calculated_at < ?",
			partnerID, entryType, monthStart, next).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("count accrual entries failed: %w", err)
	}
	return n > 0, nil
}

// MarkSettled flips the given unsettled entries into the batch. The settled
// guard in the WHERE clause makes the returned count authoritative: fewer
// rows than ids means another batch got there first.
func (r *LedgerDao) MarkSettled(entryIDs []uint64, batchID uint64) (int64, error) {
	res := r.DB.Model(&mainmodel.RevenueLedgerEntry{}).
		Where("entry_id IN ? AND settled = ?", entryIDs, false).
		Updates(map[string]interface{}{
			"settled":         true,
			"payout_batch_id": batchID,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("mark settled failed: %w", res.Error)
	}
	return res.RowsAffected, nil
}
