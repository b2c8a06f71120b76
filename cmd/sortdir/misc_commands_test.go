package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCategoriesListsEffectiveTable(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"categories"}, env.configPath)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	requireContains(t, out, "Images")
	requireContains(t, out, ".png")
	requireContains(t, out, "Photos")
	requireContains(t, out, `"Other Files"`)
	requireContains(t, out, "1 override(s)")
}

func TestCheckReportsResults(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := t.TempDir()

	out, _, err := runCLI(t, []string{"check", dir}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	requireContains(t, out, "Target directory")
	requireContains(t, out, "All checks passed")

	out, _, err = runCLI(t, []string{"check", filepath.Join(dir, "missing")}, env.configPath)
	if err == nil {
		t.Fatal("expected check to fail for a missing directory")
	}
	requireContains(t, out, "FAIL Target directory")
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Config path: "+env.configPath)
	requireContains(t, out, "Category overrides: 1")
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init to refuse overwriting")
	}
	out, _, err = runCLI(t, []string{"config", "validate"}, target)
	if err != nil {
		t.Fatalf("validate sample: %v", err)
	}
	requireContains(t, out, "Configuration valid")
}

func TestInvalidConfigFailsCommands(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.WriteFile(env.configPath, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := runCLI(t, []string{"categories"}, env.configPath); err == nil {
		t.Fatal("expected invalid config to fail")
	}
}
