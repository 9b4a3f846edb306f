package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/bordenet/pr-faq-assistant/internal/db"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// runCLI executes the root command in-process and returns its stdout.
// Flag values and their changed state are reset first so runs do not leak into each other.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(t.Context())
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// useStore points the persistent-store commands at store for the duration of the test
func useStore(t *testing.T, store db.Store) {
	t.Helper()
	original := openStore
	openStore = func(context.Context) (db.Store, error) { return store, nil }
	t.Cleanup(func() { openStore = original })
}
