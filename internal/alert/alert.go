// Package alert delivers detection findings to notification channels.
package alert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/costwatch/costwatch/internal/contract"
	"github.com/costwatch/costwatch/schema"
)

// minAlertSeverity filters which findings are worth interrupting someone for.
const minAlertSeverity = schema.SeverityMedium

// Dispatch sends findings to every configured channel. Channels fail
// independently; the first error is returned after all channels ran.
func Dispatch(ctx context.Context, result *schema.DetectionResult, cfg *contract.Config) error {
	notable := filterNotable(result.Findings)
	if len(notable) == 0 {
		return nil
	}

	var firstErr error
	for _, channel := range cfg.AlertChannels {
		var err error
		switch channel {
		case schema.SlackAlert:
			err = sendSlack(ctx, cfg.SlackWebhook, result.EvaluationDate, notable)
		case schema.ConsoleAlert:
			err = sendConsole(result.EvaluationDate, notable)
		default:
			err = fmt.Errorf("unsupported alert channel: %s", channel)
		}
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", channel, err)
		}
	}
	return firstErr
}

// filterNotable keeps findings at or above the alerting severity floor.
func filterNotable(findings []schema.Finding) []schema.Finding {
	var notable []schema.Finding
	for _, f := range findings {
		if f.Severity >= minAlertSeverity {
			notable = append(notable, f)
		}
	}
	return notable
}

// sendConsole writes an alert block to stderr so it survives output
// redirection of the main result stream.
func sendConsole(evaluation time.Time, findings []schema.Finding) error {
	if _, err := fmt.Fprintf(os.Stderr, "\nALERT: %d notable cost changes on %s\n",
		len(findings), evaluation.Format(contract.DateFormat)); err != nil {
		return err
	}
	for _, f := range findings {
		line := fmt.Sprintf("  [%s] %s %s: $%.2f -> $%.2f", f.Severity, f.Group, f.Kind, f.Baseline, f.Current)
		if f.DeltaPct != nil {
			line += fmt.Sprintf(" (%+.1f%%)", *f.DeltaPct*100)
		}
		if _, err := fmt.Fprintln(os.Stderr, line); err != nil {
			return err
		}
	}
	return nil
}

var errNoWebhook = errors.New("slack webhook URL is not configured")
