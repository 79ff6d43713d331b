package cache

import "fmt"

// AvailabilityKey builds the cache key for the free-seat set of one
// (schedule, journey date) pair. journeyDate must already be normalized
// to YYYY-MM-DD so two spellings of the same date share a key.
func AvailabilityKey(scheduleID, journeyDate string) string {
	return fmt.Sprintf("availability:%s:%s", scheduleID, journeyDate)
}
