package alert

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costwatch/costwatch/internal/contract"
	"github.com/costwatch/costwatch/schema"
)

func notableFindings() []schema.Finding {
	pct := 0.8
	return []schema.Finding{
		{Group: "ec2", Kind: schema.SpikeKind, Severity: schema.SeverityCritical, Baseline: 100, Current: 180, Delta: 80, DeltaPct: &pct, Confidence: 1.0},
		{Group: "s3", Kind: schema.DriftKind, Severity: schema.SeverityLow, Baseline: 50, Current: 60, Delta: 10, Confidence: 0.3},
	}
}

func TestFilterNotable(t *testing.T) {
	notable := filterNotable(notableFindings())
	require.Len(t, notable, 1)
	assert.Equal(t, "ec2", notable[0].Group)
}

func TestSendSlack(t *testing.T) {
	var received slackMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	evaluation := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	err := sendSlack(context.Background(), server.URL, evaluation, filterNotable(notableFindings()))
	require.NoError(t, err)

	assert.Contains(t, received.Text, "1 notable cost changes on 2026-08-15")
	require.Len(t, received.Attachments, 1)
	assert.Equal(t, "#d00000", received.Attachments[0].Color)
	assert.Contains(t, received.Attachments[0].Title, "[CRITICAL] ec2")
}

func TestSendSlackErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	err := sendSlack(context.Background(), server.URL, time.Now(), notableFindings())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestSendSlackTest(t *testing.T) {
	var received slackMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	require.NoError(t, SendSlackTest(context.Background(), server.URL))

	require.Len(t, received.Attachments, 1)
	assert.Contains(t, received.Attachments[0].Title, "[HIGH] Amazon EC2")
	assert.Contains(t, received.Attachments[0].Text, "webhook verification")
}

func TestSendSlackTestMissingWebhook(t *testing.T) {
	err := SendSlackTest(context.Background(), "")
	assert.ErrorIs(t, err, errNoWebhook)
}

func TestSendSlackMissingWebhook(t *testing.T) {
	err := sendSlack(context.Background(), "", time.Now(), notableFindings())
	assert.ErrorIs(t, err, errNoWebhook)
}

func TestDispatchSkipsQuietResults(t *testing.T) {
	cfg := &contract.Config{AlertChannels: []schema.AlertChannel{schema.SlackAlert}}
	result := &schema.DetectionResult{
		Findings: []schema.Finding{{Group: "s3", Severity: schema.SeverityLow}},
	}

	// No webhook is configured, so delivery would fail if attempted.
	err := Dispatch(context.Background(), result, cfg)
	require.NoError(t, err)
}

func TestDispatchUnsupportedChannel(t *testing.T) {
	cfg := &contract.Config{AlertChannels: []schema.AlertChannel{schema.AlertChannel("pager")}}
	result := &schema.DetectionResult{Findings: notableFindings()}

	err := Dispatch(context.Background(), result, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported alert channel")
}
