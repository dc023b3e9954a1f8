package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fnolwatch",
	Short: "Observability dashboard for the FNOL intake pipeline",
	Long: `fnolwatch is a local dashboard over the FNOL intake pipeline's trace API.

Browse processing traces, inspect per-case stage timelines and LLM costs,
watch aggregate metrics, and submit intake emails to the pipeline by hand.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
