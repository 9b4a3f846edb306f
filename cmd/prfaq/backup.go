package main

import (
	"fmt"
	"os"
	"time"

	"github.com/bordenet/pr-faq-assistant/internal/backup"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	backupOutput string
	backupInput  string
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export or import all projects as JSON",
}

var backupExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every project to a JSON backup file",
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

		data, err := backup.Marshal(backup.Export(projects, time.Now().UTC()))
		if err != nil {
			return err
		}
		if err := writeOutput(backupOutput, data); err != nil {
			return err
		}

		log.Info().Int("projects", len(projects)).Str("path", backupOutput).Msg("backup exported")
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d projects to %s\n", len(projects), backupOutput)
		return err
	},
}

var backupImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Load projects from a JSON backup file",
	Long:  "Imports a backup, upgrading legacy phaseN_output fields. Projects with an existing id are replaced.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		data, err := os.ReadFile(backupInput)
		if err != nil {
			return fmt.Errorf("failed to read backup file: %w", err)
		}
		projects, err := backup.Import(data)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		res, err := backup.Restore(ctx, store, projects)
		if err != nil {
			return err
		}

		log.Info().Int("created", res.Created).Int("updated", res.Updated).Msg("backup imported")
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d projects (%d created, %d updated)\n",
			res.Created+res.Updated, res.Created, res.Updated)
		return err
	},
}

func init() {
	backupExportCmd.Flags().StringVarP(&backupOutput, "out", "o", "", "Path of the backup file to write (required)")
	backupImportCmd.Flags().StringVarP(&backupInput, "in", "i", "", "Path of the backup file to read (required)")

	if err := backupExportCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}
	if err := backupImportCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupImportCmd)
	rootCmd.AddCommand(backupCmd)
}
