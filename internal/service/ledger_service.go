package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"droppoint-partner-api/internal/config"
	"droppoint-partner-api/internal/dal"
	"droppoint-partner-api/internal/dao"
	"droppoint-partner-api/internal/dto"
	"droppoint-partner-api/internal/idgen"
	"droppoint-partner-api/internal/logger"
	eventmodel "droppoint-partner-api/internal/model/event"
	mainmodel "droppoint-partner-api/internal/model/main"
	"droppoint-partner-api/internal/mq"
	"droppoint-partner-api/internal/revenue"
)

const guardTTL = 24 * time.Hour

type LedgerService struct {
	db    *gorm.DB
	stats *StatsService

	// mode is the configured idempotency behaviour on a duplicate parcel:
	// "strict" returns ErrDuplicateEntry, "skip" returns the existing entry.
	mode     string
	currency string
}

func NewLedgerService() *LedgerService {
	return NewLedgerServiceWithDB(dal.MainDB)
}

func NewLedgerServiceWithDB(db *gorm.DB) *LedgerService {
	mode := config.C.Revenue.IdempotencyMode
	if mode == "" {
		mode = "strict"
	}
	currency := config.C.Revenue.DefaultCurrency
	if currency == "" {
		currency = "INR"
	}
	return &LedgerService{
		db:       db,
		stats:    NewStatsServiceWithDB(db),
		mode:     mode,
		currency: currency,
	}
}

// AppendEntry ledgers one monetized parcel event: fetch the active rules,
// calculate the split, persist the entry with a deep-copied rule snapshot
// and fold it into the stats aggregate, all in one transaction. Exactly one
// entry ever exists per parcel id.
func (s *LedgerService) AppendEntry(req dto.AppendEntryReq) (*mainmodel.RevenueLedgerEntry, error) {
	guarded, prior, err := s.acquireGuard(req.ParcelID)
	if err != nil {
		return nil, err
	}
	if !guarded && prior != nil {
		if s.mode == "skip" {
			return prior, nil
		}
		return nil, fmt.Errorf("%w: parcel %d", revenue.ErrDuplicateEntry, req.ParcelID)
	}
	// A lost guard with nothing ledgered is either a stale guard from an
	// append that failed after acquiring it, or a concurrent append still
	// in flight. Fall through: the in-transaction check and the parcel
	// unique index arbitrate.

	// The guard must not outlive a failed append, or retries would be
	// rejected as duplicates with no entry ever written.
	done := false
	if guarded {
		defer func() {
			if !done {
				s.releaseGuard(req.ParcelID)
			}
		}()
	}

	cfg, err := dao.NewPartnerDaoWithDB(s.db).GetRevenueConfig(req.PartnerID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("no revenue config for partner %d", req.PartnerID)
	}

	now := time.Now()
	periodStart := revenue.PeriodStart(now, revenue.PayoutCycle(cfg.PayoutCycle))
	earned, err := dao.NewLedgerDaoWithDB(s.db).SumPartnerShareSince(req.PartnerID, periodStart, nil)
	if err != nil {
		return nil, err
	}

	split, err := revenue.Calculate(req.GrossAmount, cfg.Rules, revenue.Usage{
		EventCount:          req.EventCount,
		OpenCount:           req.OpenCount,
		PeriodPartnerEarned: earned,
	})
	if err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = s.currency
	}
	entry := &mainmodel.RevenueLedgerEntry{
		EntryID:       idgen.NewFrom("ledger"),
		PartnerID:     req.PartnerID,
		ParcelID:      req.ParcelID,
		EntryType:     mainmodel.EntryTypeParcel,
		GrossAmount:   req.GrossAmount.Round(2),
		PartnerShare:  split.PartnerShare,
		PlatformShare: split.PlatformShare,
		ModelTypeUsed: string(cfg.Rules.ModelType),
		Snapshot:      cfg.Rules.Clone(),
		Currency:      currency,
		CalculatedAt:  now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		ld := dao.NewLedgerDaoWithDB(tx)
		dup, err := ld.GetByParcelID(req.ParcelID)
		if err != nil {
			return err
		}
		if dup != nil {
			return fmt.Errorf("%w: parcel %d", revenue.ErrDuplicateEntry, req.ParcelID)
		}
		if err := ld.Insert(entry); err != nil {
			// a racing append can slip between the check and the insert;
			// the unique index turns the loser into a typed duplicate
			if dao.IsDuplicateKeyErr(err) {
				return fmt.Errorf("%w: parcel %d", revenue.ErrDuplicateEntry, req.ParcelID)
			}
			return err
		}
		return s.stats.OnEntryAppended(tx, entry)
	})
	if err != nil {
		if errors.Is(err, revenue.ErrDuplicateEntry) && s.mode == "skip" {
			if existing, gerr := dao.NewLedgerDaoWithDB(s.db).GetByParcelID(req.ParcelID); gerr == nil && existing != nil {
				return existing, nil
			}
		}
		return nil, err
	}
	done = true

	s.recordParcelEvent(req, now)
	mq.PublishLedgerCreated(dto.LedgerCreatedEvent{
		EntryID:       entry.EntryID,
		PartnerID:     entry.PartnerID,
		ParcelID:      entry.ParcelID,
		GrossAmount:   entry.GrossAmount.String(),
		PartnerShare:  entry.PartnerShare.String(),
		PlatformShare: entry.PlatformShare.String(),
		ModelTypeUsed: entry.ModelTypeUsed,
		Currency:      entry.Currency,
		CreatedAt:     now.Unix(),
	})
	return entry, nil
}

// acquireGuard takes the redis SETNX guard for the parcel. A lost guard is
// a duplicate in flight or already ledgered; the existing entry (if any) is
// returned so skip mode can answer with it. Without redis (tests) the
// unique index and in-transaction check carry the guarantee alone.
func (s *LedgerService) acquireGuard(parcelID uint64) (bool, *mainmodel.RevenueLedgerEntry, error) {
	if dal.RedisClient == nil {
		return true, nil, nil
	}
	key := fmt.Sprintf("ledger:guard:%d", parcelID)
	ok, err := dal.RedisClient.SetNX(dal.RedisCtx, key, 1, guardTTL).Result()
	if err != nil {
		// redis being down must not block ledgering; fall through to the DB
		logger.Revenue.Warnf("ledger guard unavailable: %v", err)
		return true, nil, nil
	}
	if ok {
		return true, nil, nil
	}
	existing, err := dao.NewLedgerDaoWithDB(s.db).GetByParcelID(parcelID)
	if err != nil {
		return false, nil, err
	}
	return false, existing, nil
}

func (s *LedgerService) releaseGuard(parcelID uint64) {
	if dal.RedisClient == nil {
		return
	}
	dal.RedisClient.Del(dal.RedisCtx, fmt.Sprintf("ledger:guard:%d", parcelID))
}

// recordParcelEvent appends to the sharded raw event log. Best effort: the
// ledger is the source of truth, the event log only feeds dashboard counts.
func (s *LedgerService) recordParcelEvent(req dto.AppendEntryReq, ts time.Time) {
	ev := &eventmodel.ParcelEvent{
		EventID:    idgen.New(),
		ParcelID:   req.ParcelID,
		LockerID:   req.LockerID,
		PartnerID:  req.PartnerID,
		Kind:       "deposit",
		Amount:     req.GrossAmount.Round(2),
		OccurredAt: ts,
	}
	if err := dao.NewEventDaoWithDB(s.db).Insert(ev); err != nil {
		logger.Revenue.Warnf("parcel event insert failed: %v", err)
	}
}

func (s *LedgerService) GetByParcelID(parcelID uint64) (*mainmodel.RevenueLedgerEntry, error) {
	return dao.NewLedgerDaoWithDB(s.db).GetByParcelID(parcelID)
}
