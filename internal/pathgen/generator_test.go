package pathgen

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"
)

type mockSearcher struct {
	mu      sync.Mutex
	results map[string][]SearchCandidate
	errs    map[string]error
	queries []string
}

func (m *mockSearcher) Search(ctx context.Context, query string, maxResults int64) ([]SearchCandidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.queries = append(m.queries, query)
	if err := m.errs[query]; err != nil {
		return nil, err
	}
	return m.results[query], nil
}

func (m *mockSearcher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queries)
}

type mockDetailer struct {
	mu      sync.Mutex
	details map[string]VideoDetail
	err     error
	batches [][]string
}

func (m *mockDetailer) FetchDetails(ctx context.Context, videoIDs []string) ([]VideoDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.batches = append(m.batches, videoIDs)
	if m.err != nil {
		return nil, m.err
	}

	var details []VideoDetail
	for _, id := range videoIDs {
		if detail, ok := m.details[id]; ok {
			details = append(details, detail)
		}
	}
	return details, nil
}

func (m *mockDetailer) batchSizes() []int {
	m.mu.Lock()
	defer m.mu.Unlock()

	sizes := make([]int, len(m.batches))
	for i, batch := range m.batches {
		sizes[i] = len(batch)
	}
	return sizes
}

func candidates(ids ...string) []SearchCandidate {
	out := make([]SearchCandidate, len(ids))
	for i, id := range ids {
		out[i] = SearchCandidate{VideoID: id}
	}
	return out
}

// qualifyingDetail passes both hard filters.
func qualifyingDetail(id, channelID string) VideoDetail {
	return VideoDetail{
		VideoID:         id,
		Title:           "video " + id,
		ChannelID:       channelID,
		PublishedAt:     time.Now().AddDate(0, -2, 0),
		DurationSeconds: 600,
		ViewCount:       10000,
	}
}

func newTestGenerator(searcher Searcher, detailer Detailer, config Config) *Generator {
	return NewGenerator(searcher, detailer, config)
}

func TestNormalizeKeywords(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{"messy input", " a, a ,b,,c ", []string{"a", "b", "c"}},
		{"single", "python", []string{"python"}},
		{"empty", "", nil},
		{"only separators", " , , ", nil},
		{"case sensitive", "Go,go", []string{"Go", "go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeKeywords(tt.raw); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestGenerateInvalidKeywords(t *testing.T) {
	searcher := &mockSearcher{}
	detailer := &mockDetailer{}
	gen := newTestGenerator(searcher, detailer, Config{})

	for _, raw := range []string{"", " , , "} {
		_, err := gen.Generate(context.Background(), raw, nil, nil)
		if !errors.Is(err, ErrInvalidKeywords) {
			t.Errorf("keywords %q: expected ErrInvalidKeywords, got %v", raw, err)
		}
	}

	if searcher.callCount() != 0 {
		t.Errorf("expected no search calls for invalid keywords, got %d", searcher.callCount())
	}
	if len(detailer.batches) != 0 {
		t.Errorf("expected no detail calls for invalid keywords, got %d", len(detailer.batches))
	}
}

func TestGenerateDedupeFirstWins(t *testing.T) {
	searcher := &mockSearcher{
		results: map[string][]SearchCandidate{
			"python": candidates("v1", "v2"),
			"pandas": candidates("v2", "v3"),
		},
	}
	detailer := &mockDetailer{
		details: map[string]VideoDetail{
			"v1": qualifyingDetail("v1", "c1"),
			"v2": qualifyingDetail("v2", "c2"),
			"v3": qualifyingDetail("v3", "c3"),
		},
	}
	gen := newTestGenerator(searcher, detailer, Config{})

	path, err := gen.Generate(context.Background(), "python, pandas", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(detailer.batches) != 1 {
		t.Fatalf("expected a single detail batch, got %d", len(detailer.batches))
	}
	if !reflect.DeepEqual(detailer.batches[0], []string{"v1", "v2", "v3"}) {
		t.Errorf("expected merged IDs [v1 v2 v3] in keyword order, got %v", detailer.batches[0])
	}

	seen := make(map[string]int)
	for _, video := range path {
		seen[video.VideoID]++
	}
	for _, id := range []string{"v1", "v2", "v3"} {
		if seen[id] != 1 {
			t.Errorf("expected %s exactly once in path, got %d", id, seen[id])
		}
	}
}

func TestGenerateHardFilters(t *testing.T) {
	searcher := &mockSearcher{
		results: map[string][]SearchCandidate{
			"go": candidates("short", "unseen", "boundary", "zerolikes"),
		},
	}
	detailer := &mockDetailer{
		details: map[string]VideoDetail{
			// Shorts are cut on duration.
			"short": {VideoID: "short", DurationSeconds: 45, ViewCount: 100000, PublishedAt: time.Now()},
			// Negligible exposure is cut on views.
			"unseen": {VideoID: "unseen", DurationSeconds: 600, ViewCount: 100, PublishedAt: time.Now()},
			// 60 seconds exactly is still a short.
			"boundary": {VideoID: "boundary", DurationSeconds: 60, ViewCount: 100000, PublishedAt: time.Now()},
			// Zero likes must never be a reason to exclude.
			"zerolikes": {VideoID: "zerolikes", DurationSeconds: 600, ViewCount: 10000, LikeCount: 0, PublishedAt: time.Now()},
		},
	}
	gen := newTestGenerator(searcher, detailer, Config{})

	path, err := gen.Generate(context.Background(), "go", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(path) != 1 || path[0].VideoID != "zerolikes" {
		t.Fatalf("expected only the zero-likes video to survive, got %v", path)
	}
}

func TestGenerateChunking(t *testing.T) {
	ids := make([]string, 120)
	for i := range ids {
		ids[i] = fmt.Sprintf("v%03d", i)
	}

	details := make(map[string]VideoDetail, len(ids))
	for _, id := range ids {
		details[id] = qualifyingDetail(id, "c")
	}

	searcher := &mockSearcher{
		results: map[string][]SearchCandidate{"big": candidates(ids...)},
	}
	detailer := &mockDetailer{details: details}
	gen := newTestGenerator(searcher, detailer, Config{})

	if _, err := gen.Generate(context.Background(), "big", nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sizes := detailer.batchSizes()
	if len(sizes) != 3 {
		t.Fatalf("expected 3 detail batches, got %d", len(sizes))
	}

	// Batches run concurrently, so count sizes rather than asserting order.
	counts := map[int]int{}
	for _, size := range sizes {
		counts[size]++
	}
	if counts[50] != 2 || counts[20] != 1 {
		t.Errorf("expected batch sizes 50, 50, 20, got %v", sizes)
	}
}

func TestGeneratePartialSearchFailure(t *testing.T) {
	searcher := &mockSearcher{
		results: map[string][]SearchCandidate{
			"python": candidates("v1", "v2"),
		},
		errs: map[string]error{
			"pandas": errors.New("upstream 500"),
		},
	}
	detailer := &mockDetailer{
		details: map[string]VideoDetail{
			"v1": qualifyingDetail("v1", "c1"),
			"v2": qualifyingDetail("v2", "c2"),
		},
	}
	gen := newTestGenerator(searcher, detailer, Config{})

	path, err := gen.Generate(context.Background(), "python, pandas", nil, nil)
	if err != nil {
		t.Fatalf("one failed keyword must not fail generation: %v", err)
	}
	if len(path) != 2 {
		t.Errorf("expected the successful keyword's 2 videos, got %d", len(path))
	}
}

func TestGenerateAllSearchesFail(t *testing.T) {
	searcher := &mockSearcher{
		errs: map[string]error{
			"python": errors.New("upstream 500"),
			"pandas": errors.New("upstream 500"),
		},
	}
	detailer := &mockDetailer{}
	gen := newTestGenerator(searcher, detailer, Config{})

	path, err := gen.Generate(context.Background(), "python, pandas", nil, nil)
	if err != nil {
		t.Fatalf("total upstream failure must still not error: %v", err)
	}
	if len(path) != 0 {
		t.Errorf("expected empty path, got %d entries", len(path))
	}
	if len(detailer.batches) != 0 {
		t.Errorf("expected no detail calls with no candidates, got %d", len(detailer.batches))
	}
}

func TestGenerateFailedDetailBatchTolerated(t *testing.T) {
	searcher := &mockSearcher{
		results: map[string][]SearchCandidate{"go": candidates("v1", "v2")},
	}
	detailer := &mockDetailer{err: errors.New("quota exceeded")}
	gen := newTestGenerator(searcher, detailer, Config{})

	path, err := gen.Generate(context.Background(), "go", nil, nil)
	if err != nil {
		t.Fatalf("failed detail batch must not fail generation: %v", err)
	}
	if len(path) != 0 {
		t.Errorf("expected empty path when all detail batches fail, got %d", len(path))
	}
}

func TestGenerateRankingAndTruncation(t *testing.T) {
	// Trust separates the scores: trusted > subscribed > unknown channel.
	searcher := &mockSearcher{
		results: map[string][]SearchCandidate{
			"go": candidates("plain", "subbed", "trusted"),
		},
	}
	detailer := &mockDetailer{
		details: map[string]VideoDetail{
			"plain":   qualifyingDetail("plain", "c-plain"),
			"subbed":  qualifyingDetail("subbed", "c-subbed"),
			"trusted": qualifyingDetail("trusted", "c-trusted"),
		},
	}
	gen := newTestGenerator(searcher, detailer, Config{MaxPathSize: 2})

	trusted := map[string]bool{"c-trusted": true}
	subscribed := map[string]bool{"c-subbed": true}

	path, err := gen.Generate(context.Background(), "go", trusted, subscribed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(path) != 2 {
		t.Fatalf("expected path truncated to 2, got %d", len(path))
	}
	if path[0].VideoID != "trusted" || path[1].VideoID != "subbed" {
		t.Errorf("expected [trusted subbed], got [%s %s]", path[0].VideoID, path[1].VideoID)
	}
}

func TestGenerateStableTieBreak(t *testing.T) {
	// Identical videos score identically; enrichment order decides.
	searcher := &mockSearcher{
		results: map[string][]SearchCandidate{
			"go": candidates("first", "second", "third"),
		},
	}
	detailer := &mockDetailer{
		details: map[string]VideoDetail{
			"first":  qualifyingDetail("first", "c1"),
			"second": qualifyingDetail("second", "c2"),
			"third":  qualifyingDetail("third", "c3"),
		},
	}
	gen := newTestGenerator(searcher, detailer, Config{})

	path, err := gen.Generate(context.Background(), "go", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := make([]string, len(path))
	for i, video := range path {
		got[i] = video.VideoID
	}
	if !reflect.DeepEqual(got, []string{"first", "second", "third"}) {
		t.Errorf("ties must keep enrichment order, got %v", got)
	}
}

func TestGenerateSpecialistBoostOrdering(t *testing.T) {
	// A channel appearing three times in the batch outranks a one-off
	// channel with otherwise identical videos.
	searcher := &mockSearcher{
		results: map[string][]SearchCandidate{
			"go": candidates("solo", "rep1", "rep2", "rep3"),
		},
	}
	detailer := &mockDetailer{
		details: map[string]VideoDetail{
			"solo": qualifyingDetail("solo", "c-solo"),
			"rep1": qualifyingDetail("rep1", "c-rep"),
			"rep2": qualifyingDetail("rep2", "c-rep"),
			"rep3": qualifyingDetail("rep3", "c-rep"),
		},
	}
	gen := newTestGenerator(searcher, detailer, Config{})

	path, err := gen.Generate(context.Background(), "go", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(path) != 4 {
		t.Fatalf("expected 4 videos, got %d", len(path))
	}
	if path[len(path)-1].VideoID != "solo" {
		t.Errorf("expected the one-off channel's video ranked last, got %s", path[len(path)-1].VideoID)
	}
}

func TestChunkIDs(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		size     int
		expected []int
	}{
		{"empty", 0, 50, nil},
		{"under one batch", 10, 50, []int{10}},
		{"exact batch", 50, 50, []int{50}},
		{"two and change", 120, 50, []int{50, 50, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := make([]string, tt.count)
			for i := range ids {
				ids[i] = fmt.Sprintf("v%d", i)
			}

			chunks := chunkIDs(ids, tt.size)
			var sizes []int
			for _, chunk := range chunks {
				sizes = append(sizes, len(chunk))
			}
			if !reflect.DeepEqual(sizes, tt.expected) {
				t.Errorf("expected chunk sizes %v, got %v", tt.expected, sizes)
			}
		})
	}
}
