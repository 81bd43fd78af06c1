package pathgen

import (
	"math"
	"time"
)

// ScoringWeights controls the relative weight of each sub-score in the
// composite. Weights should sum to 1 so composites stay within [0,100].
type ScoringWeights struct {
	Quality    float64
	Trust      float64
	Duration   float64
	Recency    float64
	Popularity float64
}

func DefaultWeights() ScoringWeights {
	return ScoringWeights{
		Quality:    0.35,
		Trust:      0.25,
		Duration:   0.20,
		Recency:    0.10,
		Popularity: 0.10,
	}
}

// CalculateScore computes the composite score for a single video. Every
// sub-score is clamped into [0,100] before weighting.
func CalculateScore(video VideoDetail, sctx ScoringContext, weights ScoringWeights) float64 {
	score := 0.0

	score += weights.Quality * qualityScore(video)
	score += weights.Trust * trustScore(video.ChannelID, sctx)
	score += weights.Duration * durationScore(video.DurationSeconds)
	score += weights.Recency * recencyScore(video.PublishedAt, time.Now())
	score += weights.Popularity * popularityScore(video.ViewCount)

	return score
}

// qualityScore favors the like/view ratio when likes are available. Like
// counts come back as 0 for most videos upstream, so a log-scale view
// fallback is always used instead of zeroing those videos out.
func qualityScore(video VideoDetail) float64 {
	if video.LikeCount > 0 && video.ViewCount > 0 {
		return math.Min(float64(video.LikeCount)/float64(video.ViewCount)*1000, 100)
	}
	return math.Min(math.Log10(float64(video.ViewCount)+1)*18, 100)
}

// trustScore starts from the user's explicit trust or subscription, then
// boosts channels that show up repeatedly in this batch of results.
func trustScore(channelID string, sctx ScoringContext) float64 {
	score := 0.0
	switch {
	case sctx.TrustedChannelIDs[channelID]:
		score = 100
	case sctx.SubscribedChannelIDs[channelID]:
		score = 60
	}

	switch freq := sctx.ChannelFrequency[channelID]; {
	case freq >= 3:
		score += 30
	case freq >= 2:
		score += 15
	}

	return math.Min(score, 100)
}

// durationScore peaks at 8-20 minutes, the learning sweet spot.
func durationScore(seconds int) float64 {
	minutes := float64(seconds) / 60
	switch {
	case minutes < 3:
		return 0
	case minutes < 5:
		return 40
	case minutes < 8:
		return 70
	case minutes < 20:
		return 100
	case minutes < 35:
		return 80
	case minutes < 60:
		return 60
	default:
		return 40
	}
}

func recencyScore(publishedAt, now time.Time) float64 {
	months := now.Sub(publishedAt).Hours() / (24 * 30)
	switch {
	case months < 6:
		return 100
	case months < 12:
		return 85
	case months < 24:
		return 65
	case months < 48:
		return 45
	default:
		return 25
	}
}

func popularityScore(viewCount int64) float64 {
	return math.Min(math.Log10(float64(viewCount)+1)*14, 100)
}
