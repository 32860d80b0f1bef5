package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"droppoint-partner-api/internal/dal"
	"droppoint-partner-api/internal/dao"
	"droppoint-partner-api/internal/dto"
	"droppoint-partner-api/internal/idgen"
	"droppoint-partner-api/internal/logger"
	mainmodel "droppoint-partner-api/internal/model/main"
	"droppoint-partner-api/internal/mq"
	"droppoint-partner-api/internal/notify"
	"droppoint-partner-api/internal/revenue"
)

const (
	settleMaxRetry = 3
	settleBackoff  = 25 * time.Millisecond
)

// ErrNothingDue means the payout run found no settleable entries.
var ErrNothingDue = errors.New("no ledger entries due for payout")

type SettlementService struct {
	db    *gorm.DB
	stats *StatsService
}

func NewSettlementService() *SettlementService {
	return NewSettlementServiceWithDB(dal.MainDB)
}

func NewSettlementServiceWithDB(db *gorm.DB) *SettlementService {
	return &SettlementService{db: db, stats: NewStatsServiceWithDB(db)}
}

// CollectDueEntries selects unsettled entries that have cleared the
// partner's payout cycle and delay as of the given time.
func (s *SettlementService) CollectDueEntries(partnerID uint64, asOf time.Time) ([]mainmodel.RevenueLedgerEntry, error) {
	cfg, err := dao.NewPartnerDaoWithDB(s.db).GetRevenueConfig(partnerID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("no revenue config for partner %d", partnerID)
	}
	cutoff := revenue.DueCutoff(asOf, revenue.PayoutCycle(cfg.PayoutCycle), cfg.PayoutDelayDays)
	return dao.NewLedgerDaoWithDB(s.db).ListUnsettledBefore(partnerID, cutoff)
}

// CreatePayoutBatch settles the given entries as one batch: all of them
// flip together or none do. The settled guard on the update plus the stats
// version CAS detect racing batches; the whole transaction retries on that
// conflict up to the retry budget.
func (s *SettlementService) CreatePayoutBatch(partnerID uint64, entries []mainmodel.RevenueLedgerEntry) (*mainmodel.PayoutBatch, error) {
	if len(entries) == 0 {
		return nil, ErrNothingDue
	}

	ids := make([]uint64, 0, len(entries))
	total := decimal.Zero
	for i := range entries {
		if entries[i].PartnerID != partnerID {
			return nil, fmt.Errorf("entry %d belongs to partner %d, not %d",
				entries[i].EntryID, entries[i].PartnerID, partnerID)
		}
		ids = append(ids, entries[i].EntryID)
		total = total.Add(entries[i].PartnerShare)
	}

	var batch *mainmodel.PayoutBatch
	for attempt := 1; attempt <= settleMaxRetry; attempt++ {
		now := time.Now()
		candidate := &mainmodel.PayoutBatch{
			BatchID:    idgen.NewFrom("payout"),
			PartnerID:  partnerID,
			EntryCount: len(entries),
			Total:      total,
			Currency:   entries[0].Currency,
			CreatedAt:  now,
		}
		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := dao.NewPayoutDaoWithDB(tx).Insert(candidate); err != nil {
				return err
			}
			n, err := dao.NewLedgerDaoWithDB(tx).MarkSettled(ids, candidate.BatchID)
			if err != nil {
				return err
			}
			if n != int64(len(ids)) {
				return fmt.Errorf("%w: settled %d of %d entries", revenue.ErrSettlementConflict, n, len(ids))
			}
			return s.stats.ApplySettled(tx, partnerID, total, now)
		})
		if err == nil {
			batch = candidate
			break
		}
		if !errors.Is(err, revenue.ErrSettlementConflict) {
			return nil, err
		}
		logger.Revenue.Warnf("payout batch conflict partner=%d attempt=%d: %v", partnerID, attempt, err)
		if attempt == settleMaxRetry {
			notify.AlertOps(fmt.Sprintf("payout batch for partner %d failed after %d attempts", partnerID, settleMaxRetry))
			return nil, err
		}
		time.Sleep(settleBackoff * time.Duration(attempt))
	}

	mq.PublishPayoutBatch(dto.PayoutBatchEvent{
		BatchID:    batch.BatchID,
		PartnerID:  batch.PartnerID,
		EntryCount: batch.EntryCount,
		Total:      batch.Total.String(),
		Currency:   batch.Currency,
		CreatedAt:  batch.CreatedAt.Unix(),
	})
	return batch, nil
}

// RunPayout is the collect-then-batch convenience used by the payout job
// endpoint.
func (s *SettlementService) RunPayout(partnerID uint64, asOf time.Time) (*mainmodel.PayoutBatch, error) {
	due, err := s.CollectDueEntries(partnerID, asOf)
	if err != nil {
		return nil, err
	}
	return s.CreatePayoutBatch(partnerID, due)
}
