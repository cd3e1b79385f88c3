package config

import (
	"errors"

	"github.com/spf13/viper"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Config holds all runtime configuration for the GitLab MCP server.
type Config struct {
	GitLabToken       string
	GitLabHost        string
	MinAccessLevel    int
	ProjectSearchTerm string
}

// Load reads configuration from viper, which merges flag values, env vars,
// and defaults (set up by the cobra command in cmd/gitlab-mr-mcp).
func Load() Config {
	return Config{
		GitLabToken:       viper.GetString("gitlab_token"),
		GitLabHost:        viper.GetString("gitlab_host"),
		MinAccessLevel:    viper.GetInt("min_access_level"),
		ProjectSearchTerm: viper.GetString("project_search_term"),
	}
}

// Validate checks startup requirements. A missing token is a fatal
// configuration error: the server refuses to start without one.
func (c Config) Validate() error {
	if c.GitLabToken == "" {
		return errors.New("GitLab token is required (set MR_MCP_GITLAB_TOKEN or --gitlab-token)")
	}
	return nil
}
