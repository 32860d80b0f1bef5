package dao

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"droppoint-partner-api/internal/dal"
	eventmodel "droppoint-partner-api/internal/model/event"
	"droppoint-partner-api/internal/shard"
)

type EventDao struct {
	DB *gorm.DB
}

func NewEventDao() *EventDao {
	if dal.MainDB == nil {
		log.Panic("[FATAL] dal.MainDB is nil - database not initialized")
	}
	return &EventDao{DB: dal.MainDB}
}

func NewEventDaoWithDB(db *gorm.DB) *EventDao {
	if db == nil {
		log.Panic("[FATAL] db cannot be nil")
	}
	return &EventDao{DB: db}
}

// Insert writes the event into its monthly shard.
func (r *EventDao) Insert(e *eventmodel.ParcelEvent) error {
	table := shard.Table(shard.EventBase, e.OccurredAt, e.ParcelID)
	return r.DB.Table(table).Create(e).Error
}

// CountForLockers counts events across every shard of the month containing
// ts, restricted to the given lockers. Months with no traffic have no shard
// tables yet; those are skipped.
func (r *EventDao) CountForLockers(lockerIDs []uint64, ts time.Time) (int64, error) {
	if len(lockerIDs) == 0 {
		return 0, nil
	}
	var total int64
	for _, t := range shard.AllTables(shard.EventBase, ts) {
		if !r.DB.Migrator().HasTable(t) {
			continue
		}
		var n int64
		if err := r.DB.Table(t).Where("locker_id IN ?", lockerIDs).Count(&n).Error; err != nil {
			return 0, fmt.Errorf("count events in %s failed: %w", t, err)
		}
		total += n
	}
	return total, nil
}
