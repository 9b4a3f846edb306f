package main

import (
	"os"
	"testing"

	"github.com/joho/godotenv"
)

// TestMain loads .env when present. DATABASE_URL is dropped afterwards so
// command tests only ever see the stores they inject with useStore.
func TestMain(m *testing.M) {
	_ = godotenv.Load()
	_ = os.Unsetenv("DATABASE_URL")

	os.Exit(m.Run())
}
