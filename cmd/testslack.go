package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/costwatch/costwatch/internal/alert"
	"github.com/costwatch/costwatch/internal/contract"
)

// testSlackCmd sends a synthetic finding to the configured Slack webhook.
var testSlackCmd = &cobra.Command{
	Use:   "test-slack",
	Short: "Send a test alert to the configured Slack webhook",
	Long: `Post one synthetic spike finding to the Slack incoming webhook to verify
the integration end to end before relying on it for real incidents.

Examples:
  # Verify the webhook from a flag
  costwatch test-slack --slack-webhook https://hooks.slack.com/services/...

  # Verify the webhook from the config file or COSTWATCH_SLACK_WEBHOOK
  costwatch test-slack`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := alert.SendSlackTest(rootCtx, cfg.SlackWebhook); err != nil {
			contract.LogFatal("Slack test failed", err)
		}
		fmt.Println("Test Slack alert sent successfully.")
	},
}
