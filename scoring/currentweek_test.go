package scoring

import (
	"testing"
	"time"

	"confidence-pool-go/models"
)

func kickoff(week int, day time.Time) models.Game {
	return models.Game{
		ID:          day.Format(time.RFC3339),
		Week:        week,
		SeasonType:  models.SeasonTypeRegular,
		KickoffTime: day,
	}
}

func TestCurrentWeek(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, time.September, 4, 17, 0, 0, 0, time.UTC)
	games := []models.Game{
		kickoff(1, base),                    // Thu week 1
		kickoff(1, base.Add(72*time.Hour)),  // Sun week 1
		kickoff(2, base.Add(7*24*time.Hour)),
		kickoff(2, base.Add(10*24*time.Hour)),
	}

	t.Run("inside a week window", func(t *testing.T) {
		now := base.Add(24 * time.Hour)
		week, seasonType := CurrentWeek(games, now, 1, models.SeasonTypeRegular)
		if week != 1 || seasonType != models.SeasonTypeRegular {
			t.Fatalf("expected week 1, got week %d type %d", week, seasonType)
		}
	})

	t.Run("window extends past the last kickoff", func(t *testing.T) {
		// Two days after week 1's last game, before week 2 starts:
		// still week 1 so late results can settle and score.
		now := base.Add(5 * 24 * time.Hour)
		week, _ := CurrentWeek(games, now, 1, models.SeasonTypeRegular)
		if week != 1 {
			t.Fatalf("expected week 1 during its tail window, got %d", week)
		}
	})

	t.Run("later week wins when windows overlap", func(t *testing.T) {
		// Week 2's Thursday game falls inside week 1's tail; once
		// week 2 is underway it is the current week.
		now := base.Add(7*24*time.Hour + 2*time.Hour)
		week, _ := CurrentWeek(games, now, 1, models.SeasonTypeRegular)
		if week != 2 {
			t.Fatalf("expected week 2 during its games, got %d", week)
		}
	})

	t.Run("before the season starts", func(t *testing.T) {
		now := base.Add(-14 * 24 * time.Hour)
		week, _ := CurrentWeek(games, now, 1, models.SeasonTypeRegular)
		if week != 1 {
			t.Fatalf("expected closest upcoming week 1, got %d", week)
		}
	})

	t.Run("after the season ends", func(t *testing.T) {
		now := base.Add(60 * 24 * time.Hour)
		week, _ := CurrentWeek(games, now, 1, models.SeasonTypeRegular)
		if week != 2 {
			t.Fatalf("expected final week 2, got %d", week)
		}
	})

	t.Run("no games falls back to caller default", func(t *testing.T) {
		week, seasonType := CurrentWeek(nil, base, 7, models.SeasonTypePostseason)
		if week != 7 || seasonType != models.SeasonTypePostseason {
			t.Fatalf("expected fallback 7/postseason, got %d/%d", week, seasonType)
		}
	})
}
