package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jordan/harmony/internal/schemas"
)

var parseTextCmd = &cobra.Command{
	Use:   "parse-text [message...]",
	Short: "Extract a structured event from message text",
	Long:  "Extract a structured calendar event from raw message text. Multiple arguments are joined with spaces before parsing.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runParseText,
}

var (
	parseTextModel       string
	parseTextModelString string
	parseTextValidate    bool
)

func init() {
	parseTextCmd.Flags().StringVar(&parseTextModel, "model", "", "Model alias (flash, flash-lite, pro)")
	parseTextCmd.Flags().StringVar(&parseTextModelString, "model-string", "", "Exact model identifier, bypassing the alias table")
	parseTextCmd.Flags().BoolVar(&parseTextValidate, "validate", false, "Validate the extracted event against the published schema")
	parseTextCmd.MarkFlagsMutuallyExclusive("model", "model-string")

	rootCmd.AddCommand(parseTextCmd)
}

func runParseText(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	p, cleanup, err := buildPipeline(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	event, err := p.ParseText(ctx, strings.Join(args, " "), parseTextModel, parseTextModelString)
	if err != nil {
		return fmt.Errorf("failed to parse text: %w", err)
	}

	if parseTextValidate {
		if err := schemas.ValidateEvent(event); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: extracted event does not match schema: %v\n", err)
		}
	}

	return printEvent(event)
}
