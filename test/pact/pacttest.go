//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "eligibility-api"
	ConsumerName = "eligibility-portal"

	StateNoDeterminations = "no determinations recorded"
	StateDeterminations   = "adult and minor determinations recorded"
)

const (
	ExampleFirstName   = "Ada"
	ExampleLastName    = "Lovelace"
	ExampleDateOfBirth = "1990-03-10"
	ExampleMinorDOB    = "2015-06-01"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleRequest provides stable input for a determination.
func ExampleRequest() map[string]any {
	return map[string]any{
		"firstName":   ExampleFirstName,
		"lastName":    ExampleLastName,
		"dateOfBirth": ExampleDateOfBirth,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
