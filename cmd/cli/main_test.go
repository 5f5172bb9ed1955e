package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nickyhof/DirDB"
	"github.com/nickyhof/DirDB/core"
	"github.com/nickyhof/DirDB/ps"
)

func setupTestCLI(t *testing.T) (*CLI, *bytes.Buffer) {
	persistence, err := ps.NewMemoryPersistence(ps.WithJournal())
	if err != nil {
		t.Fatalf("Failed to create persistence: %v", err)
	}

	instance := DirDB.Open(&persistence)
	engine := instance.Engine(core.Identity{
		Name:  "test",
		Email: "test@test.com",
	})

	var out bytes.Buffer
	return &CLI{
		engine:  engine,
		out:     &out,
		history: make([]string, 0),
	}, &out
}

func TestCLIRunTranscript(t *testing.T) {
	cli, out := setupTestCLI(t)

	err := cli.run(strings.NewReader("CREATE DATABASE db_1;\nUSE db_1;\n.tables\n"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Dot commands are statements unless the session is interactive
	expected := "-- Database db_1 created.\n-- Using database db_1.\n-- All done.\n"
	if out.String() != expected {
		t.Errorf("Expected %q, got %q", expected, out.String())
	}
	if len(cli.history) != 0 {
		t.Errorf("Expected no history outside interactive mode, got %v", cli.history)
	}
}

func TestCLIHandleCommand(t *testing.T) {
	cli, out := setupTestCLI(t)
	cli.engine.Execute("CREATE DATABASE db_1")
	cli.engine.Execute("USE db_1")
	cli.engine.Execute("CREATE TABLE tbl_1 (a1 int)")

	tests := []struct {
		command  string
		handled  bool
		contains string
	}{
		{".databases", true, "db_1"},
		{".tables", true, "tbl_1"},
		{".TABLES db_1", true, "tbl_1"},
		{".tables ghost", true, "Unknown database: ghost"},
		{".version", true, "DirDB version"},
		{".log", true, "Creating table db_1.tbl_1"},
		{".help", true, "CREATE TABLE"},
		{".nope", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			out.Reset()
			if handled := cli.handleCommand(tt.command); handled != tt.handled {
				t.Errorf("Expected handled=%v, got %v", tt.handled, handled)
			}
			if !strings.Contains(out.String(), tt.contains) {
				t.Errorf("Expected output to contain %q, got %q", tt.contains, out.String())
			}
		})
	}
}

func TestCLIHistory(t *testing.T) {
	cli, out := setupTestCLI(t)
	cli.interactive = true

	cli.Dispatch(out, "CREATE DATABASE db_1")
	cli.Dispatch(out, "CREATE DATABASE db_1")
	cli.Dispatch(out, "USE db_1")

	expected := []string{"CREATE DATABASE db_1;", "USE db_1;"}
	if strings.Join(cli.history, "|") != strings.Join(expected, "|") {
		t.Errorf("Expected history %v, got %v", expected, cli.history)
	}

	for i := 0; i < historyLimit+10; i++ {
		cli.addToHistory(strings.Repeat("x", i%3+1) + string(rune('a'+i%26)))
	}
	if len(cli.history) != historyLimit {
		t.Errorf("Expected history capped at %d, got %d", historyLimit, len(cli.history))
	}
}

func TestCLIHistoryFile(t *testing.T) {
	cli, _ := setupTestCLI(t)
	cli.historyFile = filepath.Join(t.TempDir(), "history")

	cli.addToHistory("USE db_1;")
	cli.saveHistory()

	reloaded, _ := setupTestCLI(t)
	reloaded.historyFile = cli.historyFile
	reloaded.loadHistory()

	if len(reloaded.history) != 1 || reloaded.history[0] != "USE db_1;" {
		t.Errorf("Unexpected history %v", reloaded.history)
	}
}

func TestGetPrompt(t *testing.T) {
	cli, _ := setupTestCLI(t)

	if prompt := cli.getPrompt(false); !strings.Contains(prompt, "dirdb>") {
		t.Errorf("Unexpected prompt %q", prompt)
	}

	cli.engine.Execute("CREATE DATABASE db_1")
	cli.engine.Execute("USE db_1")
	if prompt := cli.getPrompt(false); !strings.Contains(prompt, "dirdb (db_1)>") {
		t.Errorf("Expected database in prompt, got %q", prompt)
	}

	if prompt := cli.getPrompt(true); !strings.Contains(prompt, "...>") {
		t.Errorf("Unexpected continuation prompt %q", prompt)
	}
}

func TestRunWithScriptAndTranscript(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "script.sql")
	transcript := filepath.Join(dir, "transcript.txt")
	os.WriteFile(script, []byte("CREATE DATABASE db_1;\nDROP DATABASE db_2;\n.exit\n"), 0644)

	var stdout, stderr bytes.Buffer
	status := run([]string{
		"-baseDir", filepath.Join(dir, "DatabaseSystem"),
		"-sqlFile", script,
		"-output", transcript,
	}, strings.NewReader(""), &stdout, &stderr)

	if status != 0 {
		t.Fatalf("Expected status 0, got %d (%s)", status, stderr.String())
	}

	expected := "-- Database db_1 created.\n" +
		"-- !Failed to drop database db_2 because it does not exist.\n" +
		"-- All done.\n"
	if stdout.String() != expected {
		t.Errorf("Expected %q, got %q", expected, stdout.String())
	}

	data, err := os.ReadFile(transcript)
	if err != nil || string(data) != expected {
		t.Errorf("Unexpected transcript %q (%v)", string(data), err)
	}

	if info, err := os.Stat(filepath.Join(dir, "DatabaseSystem", "db_1")); err != nil || !info.IsDir() {
		t.Errorf("Expected database directory on disk: %v", err)
	}
}

func TestRunReadsStdinUntilEOF(t *testing.T) {
	dir := t.TempDir()

	var stdout, stderr bytes.Buffer
	status := run([]string{"-baseDir", dir}, strings.NewReader("CREATE DATABASE db_1;\nCREATE TABLE"), &stdout, &stderr)
	if status != 0 {
		t.Fatalf("Expected status 0, got %d (%s)", status, stderr.String())
	}

	expected := "-- Database db_1 created.\n-- All done.\n"
	if stdout.String() != expected {
		t.Errorf("Expected %q, got %q", expected, stdout.String())
	}
}

func TestRunJournalAndLog(t *testing.T) {
	dir := t.TempDir()
	input := "CREATE DATABASE db_1;\nUSE db_1;\nCREATE TABLE tbl_1 (a1 int);\n"

	var stdout, stderr bytes.Buffer
	if status := run([]string{"-baseDir", dir, "-journal", "-name", "alice", "-email", "alice@example.com"},
		strings.NewReader(input), &stdout, &stderr); status != 0 {
		t.Fatalf("Expected status 0, got %d (%s)", status, stderr.String())
	}

	stdout.Reset()
	if status := run([]string{"-baseDir", dir, "-log"}, strings.NewReader(""), &stdout, &stderr); status != 0 {
		t.Fatalf("Expected status 0, got %d (%s)", status, stderr.String())
	}

	if !strings.Contains(stdout.String(), "alice <alice@example.com>  Creating table db_1.tbl_1") {
		t.Errorf("Unexpected log %q", stdout.String())
	}
}

func TestRunVersionAndBadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer

	if status := run([]string{"-version"}, strings.NewReader(""), &stdout, &stderr); status != 0 {
		t.Errorf("Expected status 0, got %d", status)
	}
	if !strings.Contains(stdout.String(), "DirDB version dev") {
		t.Errorf("Unexpected version output %q", stdout.String())
	}

	if status := run([]string{"-nope"}, strings.NewReader(""), &stdout, &stderr); status != 2 {
		t.Errorf("Expected status 2 for an unknown flag, got %d", status)
	}
}

func TestRunMissingScript(t *testing.T) {
	var stdout, stderr bytes.Buffer

	status := run([]string{"-baseDir", t.TempDir(), "-sqlFile", "/does/not/exist.sql"}, strings.NewReader(""), &stdout, &stderr)
	if status != 1 {
		t.Errorf("Expected status 1, got %d", status)
	}
	if !strings.Contains(stderr.String(), "failed to open script") {
		t.Errorf("Unexpected error output %q", stderr.String())
	}
}

func TestRunLogWithoutJournalLeavesRootUntouched(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "DatabaseSystem")

	var stdout, stderr bytes.Buffer
	if status := run([]string{"-baseDir", dir}, strings.NewReader("CREATE DATABASE db_1;\n"), &stdout, &stderr); status != 0 {
		t.Fatalf("Expected status 0, got %d (%s)", status, stderr.String())
	}

	stdout.Reset()
	if status := run([]string{"-baseDir", dir, "-log"}, strings.NewReader(""), &stdout, &stderr); status != 0 {
		t.Fatalf("Expected status 0, got %d (%s)", status, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Journal is disabled") {
		t.Errorf("Unexpected log output %q", stdout.String())
	}
	if _, err := os.Stat(filepath.Join(dir, ps.JournalDir)); !os.IsNotExist(err) {
		t.Errorf("Expected no journal under %s, got %v", dir, err)
	}

	missing := filepath.Join(t.TempDir(), "missing")
	if status := run([]string{"-baseDir", missing, "-log"}, strings.NewReader(""), &stdout, &stderr); status != 0 {
		t.Fatalf("Expected status 0, got %d (%s)", status, stderr.String())
	}
	if _, err := os.Stat(missing); !os.IsNotExist(err) {
		t.Errorf("Expected -log not to create %s, got %v", missing, err)
	}
}
