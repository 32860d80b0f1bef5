package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"droppoint-partner-api/internal/dal"
	"droppoint-partner-api/internal/dao"
	"droppoint-partner-api/internal/logger"
	mainmodel "droppoint-partner-api/internal/model/main"
	"droppoint-partner-api/internal/notify"
	"droppoint-partner-api/internal/revenue"
)

const (
	statsMaxRetry = 3
	statsBackoff  = 10 * time.Millisecond
)

// driftTolerance is the allowed absolute gap between the rolling aggregate
// and the ledger sum. Entries are exact-sum by construction, so anything
// past a cent means a real divergence.
var driftTolerance = decimal.NewFromFloat(0.01)

// partnerLocks serializes in-process stats writers per partner; the version
// CAS on the row covers writers in other processes.
var partnerLocks sync.Map // map[uint64]*sync.Mutex

func lockPartner(partnerID uint64) *sync.Mutex {
	v, _ := partnerLocks.LoadOrStore(partnerID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

type StatsService struct {
	db *gorm.DB
}

func NewStatsService() *StatsService {
	return &StatsService{db: dal.MainDB}
}

func NewStatsServiceWithDB(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// OnEntryAppended folds one new ledger entry into the rolling aggregate.
// O(1): read row, add, CAS write. Runs on the caller's handle so the ledger
// append transaction carries the stats write with it.
func (s *StatsService) OnEntryAppended(tx *gorm.DB, e *mainmodel.RevenueLedgerEntry) error {
	mu := lockPartner(e.PartnerID)
	mu.Lock()
	defer mu.Unlock()

	d := dao.NewStatsDaoWithDB(tx)
	for attempt := 1; attempt <= statsMaxRetry; attempt++ {
		stats, err := d.Get(e.PartnerID)
		if err != nil {
			return err
		}
		if stats == nil {
			stats = &mainmodel.RevenueStats{PartnerID: e.PartnerID}
			if err := d.Create(stats); err != nil {
				return err
			}
		}
		now := e.CalculatedAt
		stats.TotalGross = stats.TotalGross.Add(e.GrossAmount)
		stats.TotalPartnerEarned = stats.TotalPartnerEarned.Add(e.PartnerShare)
		stats.TotalPlatformEarned = stats.TotalPlatformEarned.Add(e.PlatformShare)
		stats.PendingPayout = stats.PendingPayout.Add(e.PartnerShare)
		stats.LastCalculatedAt = &now

		ok, err := d.UpdateCAS(stats, stats.Version)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		time.Sleep(statsBackoff * time.Duration(attempt))
	}
	return fmt.Errorf("stats update for partner %d lost the version race %d times", e.PartnerID, statsMaxRetry)
}

// OnEntrySettled moves one entry's partner share from pending to paid.
func (s *StatsService) OnEntrySettled(tx *gorm.DB, e *mainmodel.RevenueLedgerEntry, paidAt time.Time) error {
	return s.ApplySettled(tx, e.PartnerID, e.PartnerShare, paidAt)
}

// ApplySettled applies a settled amount (a single entry or a whole batch
// sum) to the aggregate. Same CAS discipline as OnEntryAppended.
func (s *StatsService) ApplySettled(tx *gorm.DB, partnerID uint64, amount decimal.Decimal, paidAt time.Time) error {
	mu := lockPartner(partnerID)
	mu.Lock()
	defer mu.Unlock()

	d := dao.NewStatsDaoWithDB(tx)
	for attempt := 1; attempt <= statsMaxRetry; attempt++ {
		stats, err := d.Get(partnerID)
		if err != nil {
			return err
		}
		if stats == nil {
			return fmt.Errorf("no stats row for partner %d", partnerID)
		}
		stats.PendingPayout = stats.PendingPayout.Sub(amount)
		if stats.PendingPayout.IsNegative() {
			stats.PendingPayout = decimal.Zero
		}
		stats.PaidOut = stats.PaidOut.Add(amount)
		stats.LastPayoutDate = &paidAt

		ok, err := d.UpdateCAS(stats, stats.Version)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		time.Sleep(statsBackoff * time.Duration(attempt))
	}
	return fmt.Errorf("%w: stats settle for partner %d exhausted retries", revenue.ErrSettlementConflict, partnerID)
}

// RecomputeFromLedger rebuilds the aggregate from the full ledger. O(n)
// recovery path only, never part of the append flow.
func (s *StatsService) RecomputeFromLedger(partnerID uint64) (*mainmodel.RevenueStats, error) {
	mu := lockPartner(partnerID)
	mu.Lock()
	defer mu.Unlock()

	fresh, err := s.sumLedger(partnerID)
	if err != nil {
		return nil, err
	}

	d := dao.NewStatsDaoWithDB(s.db)
	existing, err := d.Get(partnerID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		if err := d.Create(fresh); err != nil {
			return nil, err
		}
		return fresh, nil
	}
	fresh.Version = existing.Version
	if err := d.Replace(fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

// VerifyStats compares the rolling aggregate against the ledger. Drift is
// logged, alerted and repaired via recompute, and reported to the caller as
// ErrDriftDetected. It is never corrected silently.
func (s *StatsService) VerifyStats(partnerID uint64) error {
	d := dao.NewStatsDaoWithDB(s.db)
	stats, err := d.Get(partnerID)
	if err != nil {
		return err
	}
	if stats == nil {
		return nil
	}
	fresh, err := s.sumLedger(partnerID)
	if err != nil {
		return err
	}

	drift := func(a, b decimal.Decimal) bool {
		return a.Sub(b).Abs().GreaterThan(driftTolerance)
	}
	if !drift(stats.TotalGross, fresh.TotalGross) &&
		!drift(stats.PendingPayout, fresh.PendingPayout) &&
		!drift(stats.PaidOut, fresh.PaidOut) {
		return nil
	}

	logger.Revenue.Warnf("stats drift partner=%d gross=%s/%s pending=%s/%s paid=%s/%s",
		partnerID,
		stats.TotalGross, fresh.TotalGross,
		stats.PendingPayout, fresh.PendingPayout,
		stats.PaidOut, fresh.PaidOut)
	notify.AlertOps(fmt.Sprintf("revenue stats drift for partner %d, recompute triggered", partnerID))

	if _, err := s.RecomputeFromLedger(partnerID); err != nil {
		return err
	}
	return fmt.Errorf("%w: partner %d", revenue.ErrDriftDetected, partnerID)
}

func (s *StatsService) sumLedger(partnerID uint64) (*mainmodel.RevenueStats, error) {
	entries, err := dao.NewLedgerDaoWithDB(s.db).ListByPartner(partnerID)
	if err != nil {
		return nil, err
	}
	out := &mainmodel.RevenueStats{PartnerID: partnerID}
	for i := range entries {
		e := &entries[i]
		out.TotalGross = out.TotalGross.Add(e.GrossAmount)
		out.TotalPartnerEarned = out.TotalPartnerEarned.Add(e.PartnerShare)
		out.TotalPlatformEarned = out.TotalPlatformEarned.Add(e.PlatformShare)
		if e.Settled {
			out.PaidOut = out.PaidOut.Add(e.PartnerShare)
		} else {
			out.PendingPayout = out.PendingPayout.Add(e.PartnerShare)
		}
		t := e.CalculatedAt
		if out.LastCalculatedAt == nil || t.After(*out.LastCalculatedAt) {
			out.LastCalculatedAt = &t
		}
	}
	return out, nil
}
