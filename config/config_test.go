package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spiffcs/dday/internal/constants"
	"github.com/spiffcs/dday/internal/countdown"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := loadFrom(filepath.Join(dir, "missing.yaml"), filepath.Join(dir, "missing-local.yaml"))
	if err != nil {
		t.Fatalf("loadFrom() error: %v", err)
	}

	want := &Config{DefaultFormat: "table", PerPage: constants.DefaultPerPage}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMergesLocalOverGlobal(t *testing.T) {
	dir := t.TempDir()
	global := filepath.Join(dir, "config.yaml")
	local := filepath.Join(dir, ".dday.yaml")

	writeFile(t, global, `
labels: [G0, G1, G2]
repo: octo/global
per_page: 50
default_format: json
`)
	writeFile(t, local, `
labels: [L0, L1]
dry_run: true
`)

	cfg, err := loadFrom(global, local)
	if err != nil {
		t.Fatalf("loadFrom() error: %v", err)
	}

	want := &Config{
		Labels:        []string{"L0", "L1"},
		Repo:          "octo/global",
		PerPage:       50,
		DefaultFormat: "json",
		DryRun:        true,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("merged config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	global := filepath.Join(dir, "config.yaml")
	writeFile(t, global, "labels: [unclosed")

	if _, err := loadFrom(global, filepath.Join(dir, "none.yaml")); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := &Config{Labels: []string{"A", "B"}, Repo: "from/file"}
	err := cfg.ApplyEnv(envMap(map[string]string{
		EnvLabels:     " D0, D1 ,D2",
		EnvRepository: "octo/repo",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv() error: %v", err)
	}

	if diff := cmp.Diff([]string{"D0", "D1", "D2"}, cfg.Labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
	if cfg.Repo != "octo/repo" {
		t.Errorf("Repo = %q, want octo/repo", cfg.Repo)
	}
}

func TestApplyEnvKeepsFileValuesWhenUnset(t *testing.T) {
	cfg := &Config{Labels: []string{"A", "B"}, Repo: "from/file"}
	if err := cfg.ApplyEnv(envMap(nil)); err != nil {
		t.Fatalf("ApplyEnv() error: %v", err)
	}
	if cfg.Repo != "from/file" || len(cfg.Labels) != 2 {
		t.Errorf("unexpected overlay: %+v", cfg)
	}
}

func TestApplyEnvRejectsDuplicateLabels(t *testing.T) {
	cfg := &Config{}
	err := cfg.ApplyEnv(envMap(map[string]string{EnvLabels: "D0,D1,D0"}))
	if !errors.Is(err, countdown.ErrDuplicateLabel) {
		t.Fatalf("error = %v, want ErrDuplicateLabel", err)
	}
}

func TestTokenFrom(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"none", nil, ""},
		{"github token", map[string]string{EnvToken: "a"}, "a"},
		{"action input", map[string]string{EnvRepoToken: "b"}, "b"},
		{"github token wins", map[string]string{EnvToken: "a", EnvRepoToken: "b"}, "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TokenFrom(envMap(tt.env)); got != tt.want {
				t.Errorf("TokenFrom() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseRepo(t *testing.T) {
	tests := []struct {
		input       string
		owner, name string
		wantErr     bool
	}{
		{"octo/repo", "octo", "repo", false},
		{" octo/repo ", "octo", "repo", false},
		{"", "", "", true},
		{"octo", "", "", true},
		{"/repo", "", "", true},
		{"octo/", "", "", true},
		{"a/b/c", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			owner, name, err := ParseRepo(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRepo) {
					t.Fatalf("ParseRepo(%q) error = %v, want ErrInvalidRepo", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRepo(%q) error: %v", tt.input, err)
			}
			if owner != tt.owner || name != tt.name {
				t.Errorf("ParseRepo(%q) = %q, %q", tt.input, owner, name)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{Labels: []string{"D0", "D1"}, Repo: "o/r", PerPage: 80}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("Validate() on valid config: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad repo", func(c *Config) { c.Repo = "nope" }},
		{"per page zero", func(c *Config) { c.PerPage = 0 }},
		{"per page too large", func(c *Config) { c.PerPage = 101 }},
		{"duplicate labels", func(c *Config) { c.Labels = []string{"D0", "D0"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSet(t *testing.T) {
	cfg := &Config{}

	if err := cfg.Set("format", "yaml"); err != nil || cfg.DefaultFormat != "yaml" {
		t.Errorf("Set(format) = %v, DefaultFormat = %q", err, cfg.DefaultFormat)
	}
	if err := cfg.Set("labels", "X0,X1"); err != nil {
		t.Errorf("Set(labels) error: %v", err)
	}
	if diff := cmp.Diff([]string{"X0", "X1"}, cfg.Labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
	if err := cfg.Set("repo", "octo/repo"); err != nil || cfg.Repo != "octo/repo" {
		t.Errorf("Set(repo) = %v, Repo = %q", err, cfg.Repo)
	}
	if err := cfg.Set("per_page", "25"); err != nil || cfg.PerPage != 25 {
		t.Errorf("Set(per_page) = %v, PerPage = %d", err, cfg.PerPage)
	}

	for _, kv := range [][2]string{
		{"token", "ghp_secret"},
		{"format", "xml"},
		{"repo", "missing-slash"},
		{"per_page", "0"},
		{"per_page", "many"},
		{"unknown", "x"},
	} {
		if err := cfg.Set(kv[0], kv[1]); err == nil {
			t.Errorf("Set(%q, %q) expected error", kv[0], kv[1])
		}
	}
}

func TestDefaultConfigRoundTrip(t *testing.T) {
	yamlStr, err := DefaultConfig().ToYAML()
	if err != nil {
		t.Fatalf("ToYAML() error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, yamlStr)

	cfg, err := loadFrom(path, filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("loadFrom() error: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMinimalConfigParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".dday.yaml")
	writeFile(t, path, MinimalConfig())

	cfg, err := loadFrom(filepath.Join(t.TempDir(), "none.yaml"), path)
	if err != nil {
		t.Fatalf("loadFrom() error: %v", err)
	}
	if diff := cmp.Diff(DefaultLabels(), cfg.Labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")
	if err := SaveTo(path, "repo: o/r\n"); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "repo: o/r\n" {
		t.Errorf("file contents = %q", data)
	}
}
