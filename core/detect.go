package core

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/costwatch/costwatch/internal/contract"
	"github.com/costwatch/costwatch/schema"
)

// trailingDays is how many reference-period days of history the classifier
// looks at to separate spikes from drift.
const trailingDays = 7

// Detect runs the full pipeline over an in-memory observation table:
// baseline, deviation scoring, classification, severity escalation and
// assembly. The evaluation date is the maximum timestamp present.
//
// Per-group work fans out across cfg.Workers goroutines; groups share no
// mutable state, and the assembler's sort — not scheduling order — defines
// the output order, so results are deterministic.
func Detect(ctx context.Context, obs []schema.Observation, cfg *contract.Config) (*schema.DetectionResult, error) {
	if len(obs) == 0 {
		return nil, fmt.Errorf("no observations loaded: %w", schema.ErrInsufficientHistory)
	}

	evalDate := obs[0].Date
	for _, o := range obs[1:] {
		if o.Date.After(evalDate) {
			evalDate = o.Date
		}
	}

	baseline, ref, err := buildBaseline(obs, evalDate, cfg)
	if err != nil {
		return nil, err
	}

	currents := dayTotals(obs, evalDate)
	groups := unionGroups(baseline.Expected, currents)

	findings := evaluateGroups(ctx, groups, evalDate, baseline, currents, ref, cfg)
	ordered, summary := assembleFindings(findings, cfg)

	return &schema.DetectionResult{
		EvaluationDate: evalDate,
		Baseline:       *baseline,
		Findings:       ordered,
		Summary:        summary,
	}, nil
}

// evaluateGroups fans the per-group evaluation out across a worker pool.
func evaluateGroups(ctx context.Context, groups []string, evalDate time.Time, baseline *schema.Baseline, currents map[string]float64, ref *reference, cfg *contract.Config) []schema.Finding {
	groupCh := make(chan string, len(groups))
	findingCh := make(chan schema.Finding, len(groups))
	var wg sync.WaitGroup

	for range cfg.Workers {
		wg.Go(func() {
			for g := range groupCh {
				if ctx.Err() != nil {
					continue
				}
				if f, ok := evaluateGroup(g, evalDate, baseline, currents, ref, cfg); ok {
					findingCh <- f
				}
			}
		})
	}

	for _, g := range groups {
		groupCh <- g
	}
	close(groupCh)

	wg.Wait()
	close(findingCh)

	findings := make([]schema.Finding, 0, len(groups))
	for f := range findingCh {
		findings = append(findings, f)
	}
	return findings
}

// evaluateGroup runs the scorer, classifier and severity policy for one
// group. ok=false means the group produced no finding.
func evaluateGroup(group string, evalDate time.Time, baseline *schema.Baseline, currents map[string]float64, ref *reference, cfg *contract.Config) (schema.Finding, bool) {
	cand, ok := scoreGroup(group, baseline.Expected[group], currents[group], ref, cfg)
	if !ok {
		return schema.Finding{}, false
	}

	recent := ref.selected().trailing(group, trailingDays)
	cls, ok := classifyChange(cand.Baseline, recent, cand.Current, cfg.MinAbsDelta, cfg.Policy)
	if !ok {
		return schema.Finding{}, false
	}

	finding := schema.Finding{
		Group:       cand.Group,
		Date:        evalDate,
		Baseline:    cand.Baseline,
		Current:     cand.Current,
		Delta:       cand.Delta,
		Kind:        cls.kind,
		Severity:    escalateSeverity(cls.severity, cand, cfg.Policy),
		Confidence:  cls.confidence,
		Explanation: cls.explanation,
	}
	if cand.HasPct {
		pct := cand.DeltaPct
		finding.DeltaPct = &pct
	}
	return finding, true
}

// unionGroups merges the baseline's groups with the evaluation day's groups
// into a sorted slice.
func unionGroups(expected, currents map[string]float64) []string {
	seen := make(map[string]struct{}, len(expected)+len(currents))
	for g := range expected {
		seen[g] = struct{}{}
	}
	for g := range currents {
		seen[g] = struct{}{}
	}
	groups := make([]string, 0, len(seen))
	for g := range seen {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}
