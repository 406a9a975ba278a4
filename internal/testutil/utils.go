package testutil

import (
	"log"
	"os"
	"testing"
)

// TestLogger returns a logger for use in tests. Writing to stdout lets
// go test attribute output to the owning test.
func TestLogger(t *testing.T) *log.Logger {
	t.Helper()
	return log.New(os.Stdout, "[test] ", log.LstdFlags)
}
