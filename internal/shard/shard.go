package shard

import (
	"fmt"
	"time"

	"droppoint-partner-api/internal/config"
)

// EventBase is the parcel event log base table.
const EventBase = "p_parcel_event"

const defaultShardCount = 4

func shardCount() uint32 {
	if n := config.C.Revenue.EventShards; n > 0 {
		return uint32(n)
	}
	return defaultShardCount
}

// Table returns a table name like p_parcel_event_YYYYMM_p0.
func Table(base string, ts time.Time, id uint64) string {
	month := ts.Format("200601")
	idx := NewCRC32Strategy(shardCount()).GetShard(id)
	return fmt.Sprintf("%s_%s_p%d", base, month, idx)
}

// AllTables returns every shard of the month containing ts.
func AllTables(base string, ts time.Time) []string {
	month := ts.Format("200601")
	n := int(shardCount())
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, fmt.Sprintf("%s_%s_p%d", base, month, i))
	}
	return out
}
