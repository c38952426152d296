package prediction

import "math"

// Minute buckets as the provider labels them. The first three cover the
// first half, the last three the second half including stoppage time.
var (
	firstHalfBuckets  = []string{"0-15", "16-30", "31-45"}
	secondHalfBuckets = []string{"46-60", "61-75", "76-90"}
)

// TeamCounters carries one team's season counters straight off the
// provider payload. Each map goes from a minute-bucket label to the event
// total for that bucket; a nil value means the provider reported no data
// for the bucket, which is not the same as a reported zero.
type TeamCounters struct {
	GamesTotal int
	GamesHome  int
	GamesAway  int

	Yellow       map[string]*int
	ScoredHome   map[string]*int
	ScoredAway   map[string]*int
	ConcededHome map[string]*int
	ConcededAway map[string]*int
}

// HalfAverages turns minute-bucket totals into per-game averages for each
// half. A half averages to nil when no games were played or when every
// bucket in that half is missing; within a half that has any data, missing
// buckets count as zero. Averages are rounded to two decimals.
func HalfAverages(buckets map[string]*int, gamesPlayed int) (*float64, *float64) {
	if gamesPlayed <= 0 {
		return nil, nil
	}
	return bucketAverage(buckets, firstHalfBuckets, gamesPlayed),
		bucketAverage(buckets, secondHalfBuckets, gamesPlayed)
}

func bucketAverage(buckets map[string]*int, labels []string, gamesPlayed int) *float64 {
	sum := 0
	hasData := false
	for _, label := range labels {
		if v := buckets[label]; v != nil {
			hasData = true
			sum += *v
		}
	}
	if !hasData {
		return nil
	}

	avg := round2(float64(sum) / float64(gamesPlayed))
	return &avg
}

// BuildStats derives the full per-fixture average set from both teams'
// counters. Yellow cards average over all games played; scoring splits
// average over the matching venue's game count only.
func BuildStats(fixtureID int64, home, away TeamCounters) Stats {
	s := Stats{FixtureID: fixtureID}

	s.HomeYellowFirstHalf, s.HomeYellowSecondHalf = HalfAverages(home.Yellow, home.GamesTotal)
	s.AwayYellowFirstHalf, s.AwayYellowSecondHalf = HalfAverages(away.Yellow, away.GamesTotal)

	s.HomeScoredHomeFirstHalf, s.HomeScoredHomeSecondHalf = HalfAverages(home.ScoredHome, home.GamesHome)
	s.HomeScoredAwayFirstHalf, s.HomeScoredAwaySecondHalf = HalfAverages(home.ScoredAway, home.GamesAway)
	s.HomeConcededHomeFirstHalf, s.HomeConcededHomeSecondHalf = HalfAverages(home.ConcededHome, home.GamesHome)
	s.HomeConcededAwayFirstHalf, s.HomeConcededAwaySecondHalf = HalfAverages(home.ConcededAway, home.GamesAway)

	s.AwayScoredHomeFirstHalf, s.AwayScoredHomeSecondHalf = HalfAverages(away.ScoredHome, away.GamesHome)
	s.AwayScoredAwayFirstHalf, s.AwayScoredAwaySecondHalf = HalfAverages(away.ScoredAway, away.GamesAway)
	s.AwayConcededHomeFirstHalf, s.AwayConcededHomeSecondHalf = HalfAverages(away.ConcededHome, away.GamesHome)
	s.AwayConcededAwayFirstHalf, s.AwayConcededAwaySecondHalf = HalfAverages(away.ConcededAway, away.GamesAway)

	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
