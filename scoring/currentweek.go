package scoring

import (
	"sort"
	"time"

	"confidence-pool-go/models"
)

// weekWindowTail extends a week's window past its last kickoff. A
// week remains "current" for a few days after its last kickoff so
// that scoring runs while results settle.
const weekWindowTail = 7 * 24 * time.Hour

// CurrentWeek resolves which week is in progress from actual game
// data: the week whose kickoff window contains now, otherwise the
// week of the closest upcoming kickoff, otherwise the latest week on
// record (season over). When no games are available at all, the
// caller-supplied fallback is returned — the wall-clock guess lives
// with the caller, never in here.
func CurrentWeek(games []models.Game, now time.Time, fallbackWeek, fallbackSeasonType int) (int, int) {
	if len(games) == 0 {
		return fallbackWeek, fallbackSeasonType
	}

	type weekKey struct {
		seasonType int
		week       int
	}
	type weekSpan struct {
		key   weekKey
		first time.Time
		last  time.Time
	}

	spans := make(map[weekKey]*weekSpan)
	for i := range games {
		g := &games[i]
		key := weekKey{seasonType: g.SeasonType, week: g.Week}
		span := spans[key]
		if span == nil {
			spans[key] = &weekSpan{key: key, first: g.KickoffTime, last: g.KickoffTime}
			continue
		}
		if g.KickoffTime.Before(span.first) {
			span.first = g.KickoffTime
		}
		if g.KickoffTime.After(span.last) {
			span.last = g.KickoffTime
		}
	}

	ordered := make([]*weekSpan, 0, len(spans))
	for _, span := range spans {
		ordered = append(ordered, span)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].first.Before(ordered[j].first)
	})

	// The tail lets week N's window overlap week N+1's games; when
	// both contain now, the later week wins.
	var inWindow *weekSpan
	for _, span := range ordered {
		if !now.Before(span.first) && now.Before(span.last.Add(weekWindowTail)) {
			inWindow = span
		}
	}
	if inWindow != nil {
		return inWindow.key.week, inWindow.key.seasonType
	}

	for _, span := range ordered {
		if span.first.After(now) {
			return span.key.week, span.key.seasonType
		}
	}

	last := ordered[len(ordered)-1]
	return last.key.week, last.key.seasonType
}
