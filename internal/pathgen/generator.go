package pathgen

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrInvalidKeywords is returned when keyword normalization leaves nothing
// to search for. It is the only hard failure the generator produces.
var ErrInvalidKeywords = errors.New("no usable keywords")

// Searcher finds candidate videos for a single keyword query.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int64) ([]SearchCandidate, error)
}

// Detailer fetches full metadata for one batch of video IDs. Callers must
// respect the upstream batch limit of 50 IDs per call.
type Detailer interface {
	FetchDetails(ctx context.Context, videoIDs []string) ([]VideoDetail, error)
}

const (
	// detailBatchSize is the hard upstream limit on IDs per videos call.
	detailBatchSize = 50

	minDurationSeconds = 60
	minViewCount       = 200
)

type Config struct {
	MaxPathSize       int
	ResultsPerKeyword int64
	CallTimeout       time.Duration
	MaxConcurrent     int
	Weights           ScoringWeights
}

// Generator assembles a ranked learning path from keyword searches. It holds
// no state between calls; every invocation is a pure function of its inputs
// and the two collaborators.
type Generator struct {
	searcher          Searcher
	detailer          Detailer
	maxPathSize       int
	resultsPerKeyword int64
	callTimeout       time.Duration
	maxConcurrent     int
	weights           ScoringWeights
}

func NewGenerator(searcher Searcher, detailer Detailer, config Config) *Generator {
	if config.MaxPathSize == 0 {
		config.MaxPathSize = 20
	}
	if config.ResultsPerKeyword == 0 {
		config.ResultsPerKeyword = 15
	}
	if config.CallTimeout == 0 {
		config.CallTimeout = 10 * time.Second
	}
	if config.MaxConcurrent == 0 {
		config.MaxConcurrent = 8
	}
	if config.Weights == (ScoringWeights{}) {
		config.Weights = DefaultWeights()
	}

	return &Generator{
		searcher:          searcher,
		detailer:          detailer,
		maxPathSize:       config.MaxPathSize,
		resultsPerKeyword: config.ResultsPerKeyword,
		callTimeout:       config.CallTimeout,
		maxConcurrent:     config.MaxConcurrent,
		weights:           config.Weights,
	}
}

// NormalizeKeywords splits a raw comma-separated string into trimmed,
// deduplicated keywords in insertion order.
func NormalizeKeywords(raw string) []string {
	seen := make(map[string]bool)
	var keywords []string

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		keywords = append(keywords, part)
	}

	return keywords
}

// Generate runs the full pipeline: fan out one search per keyword, merge
// first-seen-wins, fetch details in batches, score, filter, rank. Failed
// searches and failed detail batches contribute nothing instead of aborting;
// only an empty keyword set is an error.
func (g *Generator) Generate(ctx context.Context, rawKeywords string, trusted, subscribed map[string]bool) ([]VideoDetail, error) {
	keywords := NormalizeKeywords(rawKeywords)
	if len(keywords) == 0 {
		return nil, ErrInvalidKeywords
	}

	videoIDs := g.searchAll(ctx, keywords)
	if len(videoIDs) == 0 {
		log.Printf("[PATHGEN] no candidates for keywords %v", keywords)
		return []VideoDetail{}, nil
	}

	enriched := g.fetchAll(ctx, videoIDs)

	frequency := make(map[string]int)
	for _, video := range enriched {
		frequency[video.ChannelID]++
	}

	sctx := ScoringContext{
		TrustedChannelIDs:    trusted,
		SubscribedChannelIDs: subscribed,
		ChannelFrequency:     frequency,
	}

	ranked := make([]rankedVideo, 0, len(enriched))
	for _, video := range enriched {
		// Shorts and near-invisible videos are cut on duration and views.
		// LikeCount is never a filter: it is 0 for most videos upstream.
		if video.DurationSeconds <= minDurationSeconds || video.ViewCount < minViewCount {
			continue
		}
		ranked = append(ranked, rankedVideo{
			detail: video,
			score:  CalculateScore(video, sctx, g.weights),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > g.maxPathSize {
		ranked = ranked[:g.maxPathSize]
	}

	path := make([]VideoDetail, len(ranked))
	for i, rv := range ranked {
		path[i] = rv.detail
	}

	log.Printf("[PATHGEN] %d keywords -> %d candidates -> %d enriched -> %d in path",
		len(keywords), len(videoIDs), len(enriched), len(path))

	return path, nil
}

// searchAll fans out one search per keyword, waits for all of them, and
// merges the results keeping the first occurrence of each video ID.
func (g *Generator) searchAll(ctx context.Context, keywords []string) []string {
	perKeyword := make([][]SearchCandidate, len(keywords))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.maxConcurrent)
	for i, keyword := range keywords {
		eg.Go(func() error {
			callCtx, cancel := context.WithTimeout(egCtx, g.callTimeout)
			defer cancel()

			candidates, err := g.searcher.Search(callCtx, keyword, g.resultsPerKeyword)
			if err != nil {
				log.Printf("[PATHGEN] search %q failed: %v", keyword, err)
				return nil
			}
			perKeyword[i] = candidates
			return nil
		})
	}
	// Workers swallow their own failures, so Wait never returns an error.
	_ = eg.Wait()

	seen := make(map[string]bool)
	var videoIDs []string
	for _, candidates := range perKeyword {
		for _, candidate := range candidates {
			if candidate.VideoID == "" || seen[candidate.VideoID] {
				continue
			}
			seen[candidate.VideoID] = true
			videoIDs = append(videoIDs, candidate.VideoID)
		}
	}

	return videoIDs
}

// fetchAll partitions the IDs into batches of at most detailBatchSize and
// fetches them concurrently. A failed batch drops its IDs from the result.
func (g *Generator) fetchAll(ctx context.Context, videoIDs []string) []VideoDetail {
	batches := chunkIDs(videoIDs, detailBatchSize)
	perBatch := make([][]VideoDetail, len(batches))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.maxConcurrent)
	for i, batch := range batches {
		eg.Go(func() error {
			callCtx, cancel := context.WithTimeout(egCtx, g.callTimeout)
			defer cancel()

			details, err := g.detailer.FetchDetails(callCtx, batch)
			if err != nil {
				log.Printf("[PATHGEN] detail batch of %d failed: %v", len(batch), err)
				return nil
			}
			perBatch[i] = details
			return nil
		})
	}
	_ = eg.Wait()

	var enriched []VideoDetail
	for _, details := range perBatch {
		enriched = append(enriched, details...)
	}

	return enriched
}

func chunkIDs(ids []string, size int) [][]string {
	var chunks [][]string
	for len(ids) > size {
		chunks = append(chunks, ids[:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		chunks = append(chunks, ids)
	}
	return chunks
}
