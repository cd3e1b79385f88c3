package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/perchard/gitlab-mr-mcp/internal/config"
	"github.com/perchard/gitlab-mr-mcp/internal/mcpserver"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "gitlab-mr-mcp",
		Short:   "MCP server exposing GitLab merge request tools over stdio",
		Version: config.Version,
		RunE:    run,
	}

	f := rootCmd.Flags()
	f.String("gitlab-token", "", "GitLab personal access token")
	f.String("gitlab-host", "", "GitLab base URL (default: gitlab.com)")
	f.Int("min-access-level", 0, "minimum access level when listing projects")
	f.String("project-search-term", "", "search term applied when listing projects")

	// Bind flags to viper. Viper keys use underscores (gitlab_token) so they
	// match the env var suffix after stripping the MR_MCP_ prefix.
	bindFlag := func(viperKey, flagName string) {
		_ = viper.BindPFlag(viperKey, f.Lookup(flagName))
	}
	bindFlag("gitlab_token", "gitlab-token")
	bindFlag("gitlab_host", "gitlab-host")
	bindFlag("min_access_level", "min-access-level")
	bindFlag("project_search_term", "project-search-term")

	// Bind MR_MCP_* environment variables. AutomaticEnv with the prefix maps
	// MR_MCP_GITLAB_TOKEN -> "gitlab_token", MR_MCP_GITLAB_HOST -> "gitlab_host", etc.
	viper.SetEnvPrefix("MR_MCP")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	// stdout carries the MCP stream; all diagnostics go to stderr.
	log.SetOutput(os.Stderr)
	log.Printf("gitlab-mr-mcp %s starting", config.Version)
	if cfg.GitLabHost != "" {
		log.Printf("  GitLab host: %s", cfg.GitLabHost)
	}
	if cfg.MinAccessLevel > 0 {
		log.Printf("  Min access level: %d", cfg.MinAccessLevel)
	}
	if cfg.ProjectSearchTerm != "" {
		log.Printf("  Project search: %s", cfg.ProjectSearchTerm)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		log.Printf("received %s, shutting down...", sig)
		cancel()
	}()

	return mcpserver.Run(ctx, cfg)
}
