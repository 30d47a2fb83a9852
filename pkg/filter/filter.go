// Package filter provides hit filtering after a search
package filter

import (
	"fmt"
	"sort"

	"github.com/ChrisMcGann/MassAlign/pkg/search"
)

// Config holds filtering configuration
type Config struct {
	MinScore    int     // Keep only hits scoring at least this much
	MinCoverage float64 // Keep only hits covering at least this fraction of the query (0 = no cutoff)
	TopN        int     // Keep only the N best hits per query (0 = no limit)
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.MinCoverage < 0 || c.MinCoverage > 1 {
		return fmt.Errorf("min coverage %.3f must be between 0 and 1", c.MinCoverage)
	}
	if c.TopN < 0 {
		return fmt.Errorf("top-n %d must not be negative", c.TopN)
	}
	return nil
}

// Apply applies all configured filters and returns the kept hits ordered by
// query, then by descending score.
func (c *Config) Apply(hits []search.Hit) []search.Hit {
	kept := make([]search.Hit, 0, len(hits))
	for _, h := range hits {
		if h.Alignment.Score < c.MinScore {
			continue
		}
		if c.MinCoverage > 0 && h.Alignment.CoverageA() < c.MinCoverage {
			continue
		}
		kept = append(kept, h)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].QueryIndex != kept[j].QueryIndex {
			return kept[i].QueryIndex < kept[j].QueryIndex
		}
		return kept[i].Alignment.Score > kept[j].Alignment.Score
	})

	if c.TopN > 0 {
		kept = c.filterTopN(kept)
	}

	return kept
}

// filterTopN keeps the first N hits of every query; hits must be grouped by query.
func (c *Config) filterTopN(hits []search.Hit) []search.Hit {
	var filtered []search.Hit
	count := 0
	for i, h := range hits {
		if i == 0 || h.QueryIndex != hits[i-1].QueryIndex {
			count = 0
		}
		if count < c.TopN {
			filtered = append(filtered, h)
		}
		count++
	}
	return filtered
}
