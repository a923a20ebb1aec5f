package main

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/liquidity-ai/liquidity-tui/internal/api"
)

// matchThreshold is the minimum fuzzy score for a row to stay visible.
const matchThreshold = 0.6

// filterOpportunities returns the subset of subs matching the fuzzy query,
// preserving the original order. An empty query keeps everything.
func filterOpportunities(subs []api.SubsidyOpportunity, query string) []api.SubsidyOpportunity {
	query = strings.TrimSpace(query)
	if query == "" {
		return subs
	}
	var out []api.SubsidyOpportunity
	for _, s := range subs {
		if opportunityScore(s, query) >= matchThreshold {
			out = append(out, s)
		}
	}
	return out
}

// rankCatalog filters like filterOpportunities but orders best match first,
// for the catalog search overlay.
func rankCatalog(entries []api.SubsidyOpportunity, query string) []api.SubsidyOpportunity {
	query = strings.TrimSpace(query)
	if query == "" {
		return entries
	}
	type ranked struct {
		entry api.SubsidyOpportunity
		score float64
	}
	var matches []ranked
	for _, e := range entries {
		if score := opportunityScore(e, query); score >= matchThreshold {
			matches = append(matches, ranked{entry: e, score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	out := make([]api.SubsidyOpportunity, 0, len(matches))
	for _, r := range matches {
		out = append(out, r.entry)
	}
	return out
}

func opportunityScore(s api.SubsidyOpportunity, query string) float64 {
	best := 0.0
	for _, field := range []string{s.Item, s.Subsidy, s.Category} {
		if score := fuzzyScore(query, field); score > best {
			best = score
		}
	}
	return best
}

// fuzzyScore rates query against candidate in [0,1]: substring containment
// scores full, otherwise the best per-token levenshtein similarity wins, so
// "subsdy" still finds "WBSO Subsidy".
func fuzzyScore(query, candidate string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	c := strings.ToLower(candidate)
	if q == "" {
		return 1
	}
	if strings.Contains(c, q) {
		return 1
	}
	best := 0.0
	for _, token := range strings.Fields(c) {
		if sim := similarity(q, token); sim > best {
			best = sim
		}
	}
	return best
}

func similarity(a, b string) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
