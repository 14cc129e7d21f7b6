package domain

import (
	"math"
	"strings"
	"time"
)

// TrendDirection classifies whether a metric's short-window count moved
// beyond a threshold relative to the prior window.
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// Trend classification thresholds (relative day-over-day change, percent).
const (
	TrendUpThreshold   = 15.0
	TrendDownThreshold = -10.0
)

// Tracking and maintenance windows.
const (
	// MinTrackedQueryLength: shorter queries are noise and are not tracked.
	MinTrackedQueryLength = 2

	// TrendActivityWindow restricts trending reads to recently-searched records.
	TrendActivityWindow = 30 * 24 * time.Hour

	// CategoryTrendWindow is the listing-creation window compared against
	// the equally-sized window before it.
	CategoryTrendWindow = 7 * 24 * time.Hour

	// Stale records purged by maintenance: untouched longer than
	// TrendActivityWindow with fewer than PurgeMinCount total searches.
	PurgeMinCount = 3
)

// NormalizeQuery is the canonical form a query is tracked under.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Trackable reports whether a query is long enough to be worth recording.
func Trackable(query string) bool {
	return len(NormalizeQuery(query)) >= MinTrackedQueryLength
}

// SearchTrend is the rolling counter record for one normalized query.
// Counters are incremented atomically at the store; this struct is a
// read-side snapshot, never mutated in place by callers.
type SearchTrend struct {
	Query          string
	TotalCount     int64
	DailyCount     int64 // searches on the last active day
	YesterdayCount int64 // searches on the day before the last active day
	WeeklyCount    int64
	LastSearchedAt time.Time
	CreatedAt      time.Time
}

// WindowCounts projects the stored counters onto "today" and "yesterday"
// relative to now. A record last touched today reports its live counters;
// one last touched yesterday contributes its daily count as yesterday's
// window; anything older contributes nothing.
func (t *SearchTrend) WindowCounts(now time.Time) (today, yesterday int64) {
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfYesterday := startOfToday.AddDate(0, 0, -1)

	switch {
	case !t.LastSearchedAt.Before(startOfToday):
		return t.DailyCount, t.YesterdayCount
	case !t.LastSearchedAt.Before(startOfYesterday):
		return 0, t.DailyCount
	default:
		return 0, 0
	}
}

// PopularityScore is the ordering key for trending searches: all-time count
// plus twice the daily count, weighting recent popularity.
func (t *SearchTrend) PopularityScore() int64 {
	return t.TotalCount + 2*t.DailyCount
}

// TrendSnapshot is a derived, non-persisted view of one trending query or
// category.
type TrendSnapshot struct {
	Query        string         `json:"query,omitempty"`
	CategoryID   int64          `json:"category_id,omitempty"`
	CategoryName string         `json:"category_name,omitempty"`
	Count        int64          `json:"count"`
	Direction    TrendDirection `json:"direction"`
	// Percentage is the non-negative magnitude of the window-over-window change.
	Percentage float64 `json:"percentage"`
}

// ClassifyTrend compares a current short-window count against the prior
// window. A brand-new series (zero prior, nonzero current) is always up at
// 100%. Equal counts are stable at 0%. Otherwise the relative change is
// thresholded: >= +15% is up, <= -10% is down, anything between is stable.
// The returned percentage is the magnitude of the change, never negative.
func ClassifyTrend(previous, current int64) (TrendDirection, float64) {
	if previous == 0 {
		if current == 0 {
			return TrendStable, 0
		}
		return TrendUp, 100
	}

	change := (float64(current-previous) / float64(previous)) * 100
	pct := math.Abs(change)

	switch {
	case change >= TrendUpThreshold:
		return TrendUp, pct
	case change <= TrendDownThreshold:
		return TrendDown, pct
	default:
		return TrendStable, pct
	}
}
