package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"droppoint-partner-api/internal/config"
	"droppoint-partner-api/internal/dal"
	"droppoint-partner-api/internal/dao"
	"droppoint-partner-api/internal/idgen"
	mainmodel "droppoint-partner-api/internal/model/main"
	"droppoint-partner-api/internal/revenue"
)

// RentService runs the monthly accrual stream for fixed_rent and hybrid
// partners. Rent never rides a parcel entry; it lands as its own ledger
// entry type once per calendar month, followed by a guarantee top-up when
// the month's partner earnings fall short of minGuarantee.
type RentService struct {
	db    *gorm.DB
	stats *StatsService
}

func NewRentService() *RentService {
	return NewRentServiceWithDB(dal.MainDB)
}

func NewRentServiceWithDB(db *gorm.DB) *RentService {
	return &RentService{db: db, stats: NewStatsServiceWithDB(db)}
}

// AccrueMonth accrues rent and guarantee for the month containing ts.
// Idempotent per (partner, month, entry type). Returns the entries created.
func (s *RentService) AccrueMonth(partnerID uint64, ts time.Time) ([]mainmodel.RevenueLedgerEntry, error) {
	cfg, err := dao.NewPartnerDaoWithDB(s.db).GetRevenueConfig(partnerID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("no revenue config for partner %d", partnerID)
	}
	model := revenue.ModelType(cfg.ModelType)
	if model != revenue.ModelFixedRent && model != revenue.ModelHybrid {
		return nil, nil
	}

	var created []mainmodel.RevenueLedgerEntry
	ld := dao.NewLedgerDaoWithDB(s.db)

	if cfg.Rules.FixedMonthlyRent.IsPositive() {
		done, err := ld.HasEntryOfTypeInMonth(partnerID, mainmodel.EntryTypeRentAccrual, ts)
		if err != nil {
			return nil, err
		}
		if !done {
			entry, err := s.appendAccrual(cfg, mainmodel.EntryTypeRentAccrual, cfg.Rules.FixedMonthlyRent, ts)
			if err != nil {
				return nil, err
			}
			created = append(created, *entry)
		}
	}

	if cfg.Rules.MinGuarantee.IsPositive() {
		done, err := ld.HasEntryOfTypeInMonth(partnerID, mainmodel.EntryTypeGuaranteeTopup, ts)
		if err != nil {
			return nil, err
		}
		if !done {
			monthStart := time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, ts.Location())
			earned, err := ld.SumPartnerShareSince(partnerID, monthStart, nil)
			if err != nil {
				return nil, err
			}
			shortfall := cfg.Rules.MinGuarantee.Sub(earned)
			if shortfall.IsPositive() {
				entry, err := s.appendAccrual(cfg, mainmodel.EntryTypeGuaranteeTopup, shortfall.Round(2), ts)
				if err != nil {
					return nil, err
				}
				created = append(created, *entry)
			}
		}
	}

	return created, nil
}

// appendAccrual writes an accrual entry. The whole amount is partner share:
// rent and guarantee are platform liabilities, not split revenue.
func (s *RentService) appendAccrual(cfg *mainmodel.PartnerRevenueConfig, entryType int8, amount decimal.Decimal, ts time.Time) (*mainmodel.RevenueLedgerEntry, error) {
	entry := &mainmodel.RevenueLedgerEntry{
		EntryID:       idgen.NewFrom("ledger"),
		PartnerID:     cfg.PartnerID,
		ParcelID:      idgen.New(), // synthetic id, keeps the parcel unique index happy
		EntryType:     entryType,
		GrossAmount:   amount,
		PartnerShare:  amount,
		PlatformShare: decimal.Zero,
		ModelTypeUsed: cfg.ModelType,
		Snapshot:      cfg.Rules.Clone(),
		Currency:      currencyOrDefault(""),
		CalculatedAt:  ts, // attribute the accrual to the month being closed
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := dao.NewLedgerDaoWithDB(tx).Insert(entry); err != nil {
			return err
		}
		return s.stats.OnEntryAppended(tx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func currencyOrDefault(c string) string {
	if c != "" {
		return c
	}
	if config.C.Revenue.DefaultCurrency != "" {
		return config.C.Revenue.DefaultCurrency
	}
	return "INR"
}
