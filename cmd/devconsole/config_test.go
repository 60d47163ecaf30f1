package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigWritesDefaults(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := FindConfigFile([]string{dir})
	if path != filepath.Join(dir, ConfigFilename) {
		t.Fatalf("unexpected path: %s", path)
	}

	conf, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conf.Prompt != "> " || conf.History != 50 {
		t.Errorf("unexpected defaults: %#v", conf)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("defaults should have been written: %v", err)
	}

	again, err := LoadConfig(path)
	if err != nil || again.Prompt != conf.Prompt || again.Logging.File.Filename != conf.Logging.File.Filename {
		t.Errorf("configuration did not survive a round trip: %v", err)
	}
}

func TestLoadConfigValidates(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), ConfigFilename)
	if err := os.WriteFile(path, []byte(`{"prompt": "", "history": 5000}`), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected a validation error")
	}
}

func TestAliasesPath(t *testing.T) {
	t.Parallel()
	conf := NewConfig(filepath.Join("etc", "devconsole", ConfigFilename))

	if conf.AliasesPath() != "" {
		t.Errorf("no alias file by default")
	}
	conf.Aliases = "aliases.properties"
	if p := conf.AliasesPath(); p != filepath.Join("etc", "devconsole", "aliases.properties") {
		t.Errorf("unexpected path: %s", p)
	}
}
