package main

import (
	"fmt"

	"github.com/bordenet/pr-faq-assistant/internal/prompts"
	"github.com/bordenet/pr-faq-assistant/internal/workflow"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var promptProjectID string

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the prompt for a project's current phase",
	Long:  "Renders the draft, review, or synthesis prompt for the project so it can be pasted into an AI chat.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, err := uuid.Parse(promptProjectID)
		if err != nil {
			return fmt.Errorf("invalid project id %q: %w", promptProjectID, err)
		}

		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		p, err := store.GetProject(ctx, id)
		if err != nil {
			return err
		}

		cache := prompts.NewCache(prompts.NewEmbeddedFetcher())
		prompt, err := workflow.BuildPrompt(ctx, cache, p)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), prompt)
		return err
	},
}

func init() {
	promptCmd.Flags().StringVar(&promptProjectID, "project", "", "Project ID (required)")
	if err := promptCmd.MarkFlagRequired("project"); err != nil {
		panic(fmt.Sprintf("failed to mark project flag as required: %v", err))
	}
	rootCmd.AddCommand(promptCmd)
}
