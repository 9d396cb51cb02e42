package services

import (
	"sync"
	"time"
)

// DailyQuota caps calls to a metered vendor per calendar day. It is process
// local; every instance keeps its own count.
type DailyQuota struct {
	limit int

	mu        sync.Mutex
	used      int
	lastReset time.Time

	// OnExhausted runs once per day, after the call that uses the last unit.
	OnExhausted func(limit int)
}

func NewDailyQuota(limit int, now time.Time) *DailyQuota {
	return &DailyQuota{limit: limit, lastReset: now}
}

// Take uses one unit, or returns ErrQuotaExceeded when the day's units are gone.
func (q *DailyQuota) Take(now time.Time) error {
	q.mu.Lock()
	if resetDue(q.lastReset, now) {
		q.used = 0
		q.lastReset = now
	}
	if q.used >= q.limit {
		q.mu.Unlock()
		return ErrQuotaExceeded
	}
	q.used++
	exhausted := q.used == q.limit
	hook := q.OnExhausted
	q.mu.Unlock()

	if exhausted && hook != nil {
		go hook(q.limit)
	}
	return nil
}

// Remaining reports units left for the day containing now.
func (q *DailyQuota) Remaining(now time.Time) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	if resetDue(q.lastReset, now) {
		return q.limit
	}
	return q.limit - q.used
}

// resetDue reports whether now falls on a different calendar day than
// lastReset, both read in now's location.
func resetDue(lastReset, now time.Time) bool {
	ly, lm, ld := lastReset.In(now.Location()).Date()
	ny, nm, nd := now.Date()
	return ly != ny || lm != nm || ld != nd
}
