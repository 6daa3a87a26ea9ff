package core

import (
	"math"
	"sort"

	"github.com/costwatch/costwatch/internal/contract"
	"github.com/costwatch/costwatch/schema"
)

// assembleFindings applies the minimum-percentage floor, computes the
// summary, and orders findings by materiality for presentation. The floor
// exempts new and drop findings: appeared or disappeared spend is material
// whatever its percentage. The summary covers everything that survives the
// floor; the returned list is additionally capped at ResultLimit.
func assembleFindings(findings []schema.Finding, cfg *contract.Config) ([]schema.Finding, schema.Summary) {
	kept := make([]schema.Finding, 0, len(findings))
	for _, f := range findings {
		switch f.Kind {
		case schema.NewKind, schema.DropKind:
			kept = append(kept, f)
		default:
			if f.AbsDeltaPct() >= cfg.MinPctDelta {
				kept = append(kept, f)
			}
		}
	}

	// Most material first; the group tiebreak keeps the order total so
	// repeated runs are byte-identical regardless of worker scheduling.
	sort.Slice(kept, func(i, j int) bool {
		pi, pj := kept[i].AbsDeltaPct(), kept[j].AbsDeltaPct()
		if pi != pj {
			return pi > pj
		}
		di, dj := math.Abs(kept[i].Delta), math.Abs(kept[j].Delta)
		if di != dj {
			return di > dj
		}
		return kept[i].Group < kept[j].Group
	})

	summary := summarize(kept)

	if len(kept) > cfg.ResultLimit {
		kept = kept[:cfg.ResultLimit]
	}
	return kept, summary
}

// summarize builds the summary accompanying every finding list.
func summarize(findings []schema.Finding) schema.Summary {
	groups := make(map[string]struct{}, len(findings))
	var maxPct float64
	for _, f := range findings {
		groups[f.Group] = struct{}{}
		if pct := f.AbsDeltaPct(); pct > maxPct {
			maxPct = pct
		}
	}
	return schema.Summary{
		TotalFindings:  len(findings),
		ImpactedGroups: len(groups),
		MaxAbsPctDelta: maxPct,
	}
}
