package collector

import (
	"fmt"
	"strings"

	"github.com/taffe/snackindex/internal/models"
)

// Stock-market noise drowns out snack coverage in news search results
const newsExclusions = "NOT stock NOT shares NOT earnings NOT nasdaq NOT nyse"

// Target is one snack's collection configuration: the terms to search for
// and the ticker to quote
type Target struct {
	SnackID     int64
	Name        string
	SearchTerms []string
	StockTicker *string
	RedditQuery string
	NewsQuery   string
}

// BuildTargets assembles per-snack collection targets from the snack list
// and its alias table. Search terms are the snack name plus any aliases;
// the queries are derived from the full term set.
func BuildTargets(snacks []models.Snack, aliases []models.SnackAlias) []Target {
	aliasesBySnack := make(map[int64][]string)
	for _, alias := range aliases {
		aliasesBySnack[alias.SnackID] = append(aliasesBySnack[alias.SnackID], alias.AliasName)
	}

	targets := make([]Target, 0, len(snacks))
	for _, snack := range snacks {
		target := Target{
			SnackID:     snack.ID,
			Name:        snack.Name,
			SearchTerms: append([]string{snack.Name}, aliasesBySnack[snack.ID]...),
		}
		if snack.Company != nil {
			target.StockTicker = snack.Company.StockTicker
		}

		quoted := make([]string, 0, len(target.SearchTerms))
		for _, term := range target.SearchTerms {
			quoted = append(quoted, fmt.Sprintf("%q", term))
		}
		target.RedditQuery = strings.Join(quoted, " OR ")
		target.NewsQuery = fmt.Sprintf("(%s) %s", target.RedditQuery, newsExclusions)

		targets = append(targets, target)
	}
	return targets
}
