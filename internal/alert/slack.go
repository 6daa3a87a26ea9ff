package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/costwatch/costwatch/internal/contract"
	"github.com/costwatch/costwatch/schema"
)

// slackTimeout bounds the webhook round trip so a slow Slack endpoint
// cannot stall the detection run.
const slackTimeout = 10 * time.Second

// slackMessage is the incoming-webhook payload.
type slackMessage struct {
	Text        string            `json:"text"`
	Attachments []slackAttachment `json:"attachments,omitempty"`
}

// slackAttachment is one colored block per finding.
type slackAttachment struct {
	Color  string       `json:"color"`
	Title  string       `json:"title"`
	Text   string       `json:"text"`
	Fields []slackField `json:"fields,omitempty"`
}

type slackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

// severityColors maps severities to Slack attachment colors.
var severityColors = map[schema.Severity]string{
	schema.SeverityCritical: "#d00000",
	schema.SeverityHigh:     "#e85d04",
	schema.SeverityMedium:   "#ffba08",
	schema.SeverityLow:      "#4361ee",
}

// sendSlack posts notable findings to a Slack incoming webhook.
func sendSlack(ctx context.Context, webhookURL string, evaluation time.Time, findings []schema.Finding) error {
	if webhookURL == "" {
		return errNoWebhook
	}

	msg := buildSlackMessage(evaluation, findings)
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal slack payload: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, slackTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post to slack: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("slack webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// SendSlackTest posts one synthetic finding to the webhook so operators
// can verify the integration before a real incident.
func SendSlackTest(ctx context.Context, webhookURL string) error {
	now := time.Now()
	pct := 1.0
	finding := schema.Finding{
		Group:       "Amazon EC2",
		Date:        now,
		Baseline:    75,
		Current:     150,
		Delta:       75,
		DeltaPct:    &pct,
		Kind:        schema.SpikeKind,
		Severity:    schema.SeverityHigh,
		Confidence:  0.9,
		Explanation: "Synthetic finding for webhook verification",
	}
	return sendSlack(ctx, webhookURL, now, []schema.Finding{finding})
}

// buildSlackMessage renders findings as one attachment each, colored by severity.
func buildSlackMessage(evaluation time.Time, findings []schema.Finding) slackMessage {
	msg := slackMessage{
		Text: fmt.Sprintf(":rotating_light: %d notable cost changes on %s",
			len(findings), evaluation.Format(contract.DateFormat)),
	}

	for _, f := range findings {
		delta := fmt.Sprintf("$%.2f -> $%.2f ($%+.2f)", f.Baseline, f.Current, f.Delta)
		if f.DeltaPct != nil {
			delta += fmt.Sprintf(", %+.1f%%", *f.DeltaPct*100)
		}
		msg.Attachments = append(msg.Attachments, slackAttachment{
			Color: severityColors[f.Severity],
			Title: fmt.Sprintf("[%s] %s: %s", f.Severity, f.Group, f.Kind),
			Text:  f.Explanation,
			Fields: []slackField{
				{Title: "Change", Value: delta, Short: true},
				{Title: "Confidence", Value: fmt.Sprintf("%.0f%%", f.Confidence*100), Short: true},
			},
		})
	}
	return msg
}
