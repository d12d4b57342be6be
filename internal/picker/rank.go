package picker

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sfuzzy "github.com/sahilm/fuzzy"
)

type keySource[T any] struct {
	items []T
	key   func(T) string
}

func (s keySource[T]) String(i int) string { return s.key(s.items[i]) }

func (s keySource[T]) Len() int { return len(s.items) }

// FilterAndRank returns at most limit entries of corpus. An empty query keeps
// the original order untouched; otherwise entries whose key does not match
// are dropped and the rest are ordered by match quality, ties keeping corpus
// order. A non-positive limit means no limit.
func FilterAndRank[T any](corpus []T, query string, key func(T) string, limit int) []T {
	if limit <= 0 || limit > len(corpus) {
		limit = len(corpus)
	}
	if query == "" {
		out := make([]T, limit)
		copy(out, corpus[:limit])
		return out
	}

	indexes := scoredMatches(corpus, query, key)
	if len(indexes) == 0 {
		indexes = foldedMatches(corpus, query, key)
	}
	if len(indexes) > limit {
		indexes = indexes[:limit]
	}
	out := make([]T, len(indexes))
	for i, idx := range indexes {
		out[i] = corpus[idx]
	}
	return out
}

func scoredMatches[T any](corpus []T, query string, key func(T) string) []int {
	matches := sfuzzy.FindFrom(query, keySource[T]{items: corpus, key: key})
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Index < matches[j].Index
	})
	out := make([]int, len(matches))
	for i, m := range matches {
		out[i] = m.Index
	}
	return out
}

// foldedMatches catches queries that only match once case and diacritics are
// folded away, e.g. "cafe" against "café.txt".
func foldedMatches[T any](corpus []T, query string, key func(T) string) []int {
	targets := make([]string, len(corpus))
	for i, item := range corpus {
		targets[i] = key(item)
	}
	ranks := fuzzy.RankFindNormalizedFold(query, targets)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})
	out := make([]int, len(ranks))
	for i, r := range ranks {
		out[i] = r.OriginalIndex
	}
	return out
}
