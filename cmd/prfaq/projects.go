package main

import (
	"fmt"

	"github.com/bordenet/pr-faq-assistant/internal/observability"
	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List stored projects with their phase and latest score",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		projects, err := store.ListProjects(ctx)
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintProjects(projects)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}
