package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shebe-dev/mcplens/internal/config"
)

func TestConfigCmdShowEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	configPath = filepath.Join(tmpDir, "config.toml")
	jsonOutput = false
	defer func() {
		configPath = config.Path()
		jsonOutput = false
	}()

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	rootCmd.SetArgs([]string{"config"})
	if err := rootCmd.Execute(); err != nil {
		w.Close()
		os.Stdout = old
		t.Fatalf("execute: %v", err)
	}

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	output := buf.String()

	if !strings.Contains(output, "KEY") || !strings.Contains(output, "VALUE") {
		t.Errorf("expected table headers, got: %s", output)
	}
	if !strings.Contains(output, "log_dir") {
		t.Errorf("expected log_dir key, got: %s", output)
	}
	if !strings.Contains(output, "(not set)") {
		t.Errorf("expected (not set) for empty values, got: %s", output)
	}
}

func TestConfigCmdGet(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.toml")
	configPath = cfgPath
	jsonOutput = false
	defer func() {
		configPath = config.Path()
		jsonOutput = false
	}()

	// Seed config.
	cfg := &config.Config{LogDir: "/custom/debug"}
	if err := cfg.SaveTo(cfgPath); err != nil {
		t.Fatal(err)
	}

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	rootCmd.SetArgs([]string{"config", "log_dir"})
	if err := rootCmd.Execute(); err != nil {
		w.Close()
		os.Stdout = old
		t.Fatalf("execute: %v", err)
	}

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	output := strings.TrimSpace(buf.String())

	if output != "/custom/debug" {
		t.Errorf("got %q, want %q", output, "/custom/debug")
	}
}

func TestConfigCmdSet(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.toml")
	configPath = cfgPath
	jsonOutput = false
	defer func() {
		configPath = config.Path()
		jsonOutput = false
	}()

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	rootCmd.SetArgs([]string{"config", "output_dir", "/data/reports"})
	if err := rootCmd.Execute(); err != nil {
		w.Close()
		os.Stdout = old
		t.Fatalf("execute: %v", err)
	}

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	if !strings.Contains(buf.String(), "output_dir = /data/reports") {
		t.Errorf("expected confirmation, got: %s", buf.String())
	}

	// Verify persisted.
	cfg, err := config.LoadFrom(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutputDir != "/data/reports" {
		t.Errorf("persisted value: got %q, want %q", cfg.OutputDir, "/data/reports")
	}
}

func TestConfigCmdInvalidKey(t *testing.T) {
	tmpDir := t.TempDir()
	configPath = filepath.Join(tmpDir, "config.toml")
	jsonOutput = false
	defer func() {
		configPath = config.Path()
		jsonOutput = false
	}()

	rootCmd.SetArgs([]string{"config", "bad_key"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestConfigCmdInvalidFormat(t *testing.T) {
	tmpDir := t.TempDir()
	configPath = filepath.Join(tmpDir, "config.toml")
	jsonOutput = false
	defer func() {
		configPath = config.Path()
		jsonOutput = false
	}()

	rootCmd.SetArgs([]string{"config", "default_format", "yaml"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for invalid default_format")
	}
}

func TestResolveLogDir(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.toml")
	configPath = cfgPath
	defer func() { configPath = config.Path() }()

	if got := resolveLogDir([]string{"/explicit"}); got != "/explicit" {
		t.Errorf("positional arg: got %q, want /explicit", got)
	}

	// No config: fall back to the default.
	if got := resolveLogDir(nil); got != defaultLogDir() {
		t.Errorf("no config: got %q, want %q", got, defaultLogDir())
	}

	cfg := &config.Config{LogDir: "/from/config"}
	if err := cfg.SaveTo(cfgPath); err != nil {
		t.Fatal(err)
	}
	if got := resolveLogDir(nil); got != "/from/config" {
		t.Errorf("configured log_dir: got %q, want /from/config", got)
	}
	if got := resolveLogDir([]string{"/explicit"}); got != "/explicit" {
		t.Errorf("positional arg beats config: got %q, want /explicit", got)
	}
}
