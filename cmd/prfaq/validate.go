package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bordenet/pr-faq-assistant/internal/ingestion"
	"github.com/bordenet/pr-faq-assistant/internal/observability"
	"github.com/bordenet/pr-faq-assistant/internal/schemas"
	"github.com/bordenet/pr-faq-assistant/internal/validator"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// exitBelowMinScore is the exit status when --min-score is not met
const exitBelowMinScore = 2

// MinScoreError is returned when a document scores below --min-score
type MinScoreError struct {
	Score    int
	MinScore int
}

func (e *MinScoreError) Error() string {
	return fmt.Sprintf("score %d is below the minimum of %d", e.Score, e.MinScore)
}

// exitCode maps a command error onto the process exit status
func exitCode(err error) int {
	var minErr *MinScoreError
	if errors.As(err, &minErr) {
		return exitBelowMinScore
	}
	return 1
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Score a PR-FAQ document",
	Long:  "Reads a markdown, text, or HTML PR-FAQ, scores it on structure, content, professional quality, customer evidence and FAQ quality, and prints the result.",
	RunE:  runValidate,
}

var (
	validateInput    string
	validateOutput   string
	validateJSON     bool
	validateMinScore int
)

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to PR-FAQ document (required)")
	validateCmd.Flags().StringVarP(&validateOutput, "out", "o", "", "Write the ValidationResult JSON to this file")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Print JSON instead of the summary box")
	validateCmd.Flags().IntVar(&validateMinScore, "min-score", 0, "Fail when the total score is below this value")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	text, meta, err := ingestion.IngestFromFileWithLimit(validateInput, appConfig.MaxDocumentBytes)
	if err != nil {
		return fmt.Errorf("failed to ingest document: %w", err)
	}
	log.Debug().Str("path", meta.Path).Str("format", meta.Format).Int("bytes", meta.Bytes).Str("hash", meta.Hash).Msg("ingested document")

	result := validator.ValidatePRFAQ(text)

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal validation result: %w", err)
	}

	if validateOutput != "" {
		if err := writeOutput(validateOutput, jsonBytes); err != nil {
			return err
		}

		// Validate output against schema (non-fatal)
		if err := schemas.ValidateEmbedded(schemas.ValidationResultSchema, jsonBytes); err != nil {
			log.Warn().Err(err).Msg("validation result does not match its schema")
		}
	}

	out := cmd.OutOrStdout()
	if validateJSON {
		if _, err := fmt.Fprintln(out, string(jsonBytes)); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	} else {
		observability.NewPrinter(out).PrintValidationResult(&result)
	}

	log.Info().Int("score", result.TotalScore).Bool("penalty", result.PenaltyApplied).Msg("document validated")

	if validateMinScore > 0 && result.TotalScore < validateMinScore {
		return &MinScoreError{Score: result.TotalScore, MinScore: validateMinScore}
	}
	return nil
}

// writeOutput writes data to path, creating parent directories
func writeOutput(path string, data []byte) error {
	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
