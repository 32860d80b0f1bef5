package utils

import (
	"strconv"
	"time"
)

// ParseTimestampMs parses a millisecond unix timestamp string.
func ParseTimestampMs(tsStr string) (time.Time, error) {
	ms, err := strconv.ParseInt(tsStr, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	sec := ms / 1000
	nsec := (ms % 1000) * 1e6
	return time.Unix(sec, nsec), nil
}

// IsTimestampValid reports whether ts lies within window of now.
func IsTimestampValid(ts time.Time, window time.Duration) bool {
	now := time.Now()
	diff := now.Sub(ts)
	return diff >= 0 && diff <= window
}

func GetTimestampMs() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}
