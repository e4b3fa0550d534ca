package refgraph

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage refgraph configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Write a starter .refgraph.yaml with the default settings to the
home directory, or to the path given with --output.`,
	RunE: runConfigInit,
}

var (
	configInitOutput string
	configInitForce  bool
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "", "Path for the config file (default is $HOME/.refgraph.yaml)")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")
}

func defaultConfigYAML() ([]byte, error) {
	defaults := map[string]any{
		"log": map[string]any{
			"level":  "info",
			"format": "text",
		},
		"server": map[string]any{
			"host": "localhost",
			"port": 8080,
			"mode": "debug",
		},
		"source": map[string]any{
			"driver": "file",
			"path":   "./snapshot.json",
			"uri":    "",
			"username": "",
			"password": "",
			"database": "",
		},
		"store": map[string]any{
			"enabled":   true,
			"path":      "",
			"in_memory": false,
			"ttl":       3600,
		},
		"analysis": map[string]any{
			"timeout": 60,
		},
		"narrator": map[string]any{
			"enabled":     false,
			"api_key":     "",
			"base_url":    "",
			"model":       "gpt-4o-mini",
			"temperature": 0.2,
		},
		"telemetry": map[string]any{
			"parquet_path": "",
		},
		"circuit_breaker": map[string]any{
			"enabled":             true,
			"max_requests":        3,
			"interval":            60,
			"timeout":             30,
			"ready_to_trip_ratio": 0.6,
		},
	}
	return yaml.Marshal(defaults)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configInitOutput
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to find home directory: %w", err)
		}
		path = filepath.Join(home, ".refgraph.yaml")
	}

	if _, err := os.Stat(path); err == nil && !configInitForce {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}

	raw, err := defaultConfigYAML()
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Wrote config file:", path)
	return nil
}
