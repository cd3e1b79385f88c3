package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestLoad(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("gitlab_token", "glpat-test-token")
	viper.Set("gitlab_host", "https://gitlab.example.com")
	viper.Set("min_access_level", 30)
	viper.Set("project_search_term", "infra")

	cfg := Load()
	if cfg.GitLabToken != "glpat-test-token" {
		t.Errorf("GitLabToken = %q, want %q", cfg.GitLabToken, "glpat-test-token")
	}
	if cfg.GitLabHost != "https://gitlab.example.com" {
		t.Errorf("GitLabHost = %q, want %q", cfg.GitLabHost, "https://gitlab.example.com")
	}
	if cfg.MinAccessLevel != 30 {
		t.Errorf("MinAccessLevel = %d, want 30", cfg.MinAccessLevel)
	}
	if cfg.ProjectSearchTerm != "infra" {
		t.Errorf("ProjectSearchTerm = %q, want %q", cfg.ProjectSearchTerm, "infra")
	}
}

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfg := Load()
	if cfg.GitLabToken != "" {
		t.Errorf("GitLabToken = %q, want empty", cfg.GitLabToken)
	}
	if cfg.MinAccessLevel != 0 {
		t.Errorf("MinAccessLevel = %d, want 0", cfg.MinAccessLevel)
	}
}

func TestValidate_MissingToken(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing token")
	}
}

func TestValidate_WithToken(t *testing.T) {
	cfg := Config{GitLabToken: "glpat-abc"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
}
