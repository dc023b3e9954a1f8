package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ecazzaniga/fnolwatch/internal/api"
	"github.com/ecazzaniga/fnolwatch/internal/domain"
	"github.com/ecazzaniga/fnolwatch/internal/infrastructure/config"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Submit an intake email to the pipeline",
	Long: `Submit an intake email to the FNOL processing pipeline.

Examples:
  fnolwatch ingest --subject "Rear-end collision" --sender driver@example.com --body "..."
  fnolwatch ingest --subject "Hail damage" --sender agent@example.com --attachments photos.zip,claim.pdf`,
	RunE: runIngest,
}

var (
	ingestSubject     string
	ingestBody        string
	ingestSender      string
	ingestAttachments string
	ingestReceivedAt  string
)

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().StringVar(&ingestSubject, "subject", "", "Email subject (required)")
	ingestCmd.Flags().StringVar(&ingestBody, "body", "", "Email body")
	ingestCmd.Flags().StringVar(&ingestSender, "sender", "", "Sender address (required)")
	ingestCmd.Flags().StringVar(&ingestAttachments, "attachments", "", "Comma separated attachment names")
	ingestCmd.Flags().StringVar(&ingestReceivedAt, "received-at", "", "RFC3339 receipt time (defaults to now)")
	_ = ingestCmd.MarkFlagRequired("subject")
	_ = ingestCmd.MarkFlagRequired("sender")
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadDashboard()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	receivedAt := ingestReceivedAt
	if receivedAt == "" {
		receivedAt = time.Now().UTC().Format(time.RFC3339)
	}

	var attachments []string
	for _, a := range strings.Split(ingestAttachments, ",") {
		if name := strings.TrimSpace(a); name != "" {
			attachments = append(attachments, name)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Backend.Timeout)
	defer cancel()

	client := api.NewClient(cfg.Backend.URL, cfg.Backend.Timeout)
	ack, err := client.SubmitIngest(ctx, domain.IngestPayload{
		Subject:     ingestSubject,
		Body:        ingestBody,
		Attachments: attachments,
		Sender:      ingestSender,
		ReceivedAt:  receivedAt,
	})
	if err != nil {
		return fmt.Errorf("submission failed: %w", err)
	}

	fmt.Println(string(ack))
	return nil
}
