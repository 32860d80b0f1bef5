package shard

import (
	"fmt"
	"hash/crc32"
)

type ShardStrategy interface {
	GetShard(id uint64) int
}

// CRC32ShardStrategy hashes the id so parcels spread evenly regardless of
// how the snowflake sequence is skewed.
type CRC32ShardStrategy struct {
	ShardCount uint32
}

func NewCRC32Strategy(count uint32) *CRC32ShardStrategy {
	return &CRC32ShardStrategy{ShardCount: count}
}

func (s *CRC32ShardStrategy) GetShard(id uint64) int {
	hash := crc32.ChecksumIEEE([]byte(fmt.Sprintf("%d", id)))
	return int(hash % s.ShardCount)
}
