package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestEndToEndWorkflow drives a built chronorex binary through a week of check-ins.
// Build it first with: go build -o bin/chronorex ./cmd/chronorex
func TestEndToEndWorkflow(t *testing.T) {
	// 1. Setup Environment
	// Allow overriding bin dir via env var, default to ../../bin (relative to tests/e2e)
	binDir := os.Getenv("CHRONOREX_BIN_DIR")
	if binDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			t.Fatalf("Failed to get cwd: %v", err)
		}
		binDir = filepath.Join(cwd, "..", "..", "bin")
	}
	binDir, _ = filepath.Abs(binDir)

	cliPath := filepath.Join(binDir, "chronorex")
	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		t.Skipf("CLI binary not found at %s. Please build it first.", cliPath)
	}

	// Isolated home, config and database
	tempDir := t.TempDir()
	t.Logf("Running test in temp dir: %s", tempDir)

	var env []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "HOME=") && !strings.HasPrefix(e, "CHRONOREX_DB_CONNECTION=") {
			env = append(env, e)
		}
	}
	env = append(env, fmt.Sprintf("HOME=%s", tempDir))

	configFile := filepath.Join(tempDir, "chronorex", "config.yaml")
	dbPath := filepath.Join(tempDir, "chronorex", "chronorex.db")
	base := []string{"--config", configFile, "--db", dbPath}
	run := func(args ...string) string {
		t.Helper()
		return runCmd(t, cliPath, env, append(append([]string{}, base...), args...)...)
	}

	// 2. Initialize CLI
	t.Log("Initializing CLI...")
	run("init")
	if _, err := os.Stat(configFile); err != nil {
		t.Fatalf("Expected default config at %s: %v", configFile, err)
	}
	run("settings", "--timezone", "UTC", "--notifications-denied")

	// 3. Log a week of check-ins with symptoms and activities
	t.Log("Logging a week of data...")
	for day := 1; day <= 7; day++ {
		date := fmt.Sprintf("2024-01-%02d", day)
		restedness := fmt.Sprintf("%d", 30+day*8)
		run("checkin", "--date", date, "-r", restedness, "--sleep", "3", "--tags", "work")
		run("symptom", "add", "Headache", "-s", fmt.Sprintf("%d", 9-day), "--date", date, "--at", "14:00")
		run("activity", "add", "walk", "-e", fmt.Sprintf("%d", 1+day%4), "-d", "30", "--date", date, "--at", "18:00")
	}

	// 4. Insights and weekly review
	out := run("insights", "--json")
	if !strings.Contains(out, "moving_average") {
		t.Errorf("Expected a fatigue trend in insights output:\n%s", out)
	}

	out = run("review", "list")
	if !strings.Contains(out, "2024-01-01") || !strings.Contains(out, "2024-01-07") {
		t.Errorf("Expected a weekly review for 2024-01-01 to 2024-01-07:\n%s", out)
	}
	run("review", "show")

	// 5. Export
	exportDir := filepath.Join(tempDir, "export")
	run("export", "csv", "-o", exportDir)
	files, err := filepath.Glob(filepath.Join(exportDir, "chronorex_*.csv"))
	if err != nil {
		t.Fatalf("Failed to list export dir: %v", err)
	}
	if len(files) != 6 {
		t.Errorf("Expected 6 CSV files, got %d: %v", len(files), files)
	}
	run("export", "report", "-o", exportDir)

	// 6. Health checks and backups
	run("backup", "create")
	run("doctor")
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", path, args, err, out)
	}
	return string(out)
}
