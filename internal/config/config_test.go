package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGlobalConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	want := filepath.Join("/tmp/xdg", GlobalConfigDir, GlobalConfigFile)
	if got := GlobalConfigPath(); got != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", got, want)
	}
}

func TestLoadGlobalConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	ResetGlobalConfigCache()
	t.Cleanup(ResetGlobalConfigCache)

	cfgDir := filepath.Join(dir, GlobalConfigDir)
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "default_to: ris\nindent: \"\\t\"\nsort: true\n"
	if err := os.WriteFile(filepath.Join(cfgDir, GlobalConfigFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error: %v", err)
	}
	if cfg.DefaultTo != "ris" {
		t.Errorf("DefaultTo = %q, want ris", cfg.DefaultTo)
	}
	if cfg.Indent != "\t" {
		t.Errorf("Indent = %q, want tab", cfg.Indent)
	}
	if !cfg.Sort {
		t.Error("Sort = false, want true")
	}
}

func TestLoadGlobalConfig_MissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	ResetGlobalConfigCache()
	t.Cleanup(ResetGlobalConfigCache)

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error: %v", err)
	}
	if *cfg != (GlobalConfig{}) {
		t.Errorf("cfg = %+v, want zero value", cfg)
	}
}

func TestLibraryPath(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		t.Setenv("REFCONV_LIBRARY", "/tmp/custom.db")
		ResetGlobalConfigCache()
		t.Cleanup(ResetGlobalConfigCache)

		if got := LibraryPath(); got != "/tmp/custom.db" {
			t.Errorf("LibraryPath() = %q, want /tmp/custom.db", got)
		}
	})

	t.Run("config value", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", dir)
		t.Setenv("REFCONV_LIBRARY", "")
		ResetGlobalConfigCache()
		t.Cleanup(ResetGlobalConfigCache)

		cfgDir := filepath.Join(dir, GlobalConfigDir)
		if err := os.MkdirAll(cfgDir, 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(cfgDir, GlobalConfigFile), []byte("library_path: /tmp/lib.db\n"), 0644); err != nil {
			t.Fatal(err)
		}

		if got := LibraryPath(); got != "/tmp/lib.db" {
			t.Errorf("LibraryPath() = %q, want /tmp/lib.db", got)
		}
	})

	t.Run("default next to config", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", dir)
		t.Setenv("REFCONV_LIBRARY", "")
		ResetGlobalConfigCache()
		t.Cleanup(ResetGlobalConfigCache)

		want := filepath.Join(dir, GlobalConfigDir, DefaultLibraryFile)
		if got := LibraryPath(); got != want {
			t.Errorf("LibraryPath() = %q, want %q", got, want)
		}
	})
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := ExpandTilde("~/lib.db"); got != filepath.Join(home, "lib.db") {
		t.Errorf("ExpandTilde(~/lib.db) = %q", got)
	}
	if got := ExpandTilde("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandTilde(/abs/path) = %q, want unchanged", got)
	}
	if got := ExpandTilde("relative"); got != "relative" {
		t.Errorf("ExpandTilde(relative) = %q, want unchanged", got)
	}
}
