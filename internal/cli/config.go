package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/ghostwriter/internal/model"
)

const rule = "═══════════════════════════════════════════════════════════"

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Ghostwriter configuration",
	Long: `Manage Ghostwriter configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (GHOSTWRITER_*, e.g. GHOSTWRITER_LLM_PROVIDER)
3. Config file (~/.ghostwriter/config.yaml)
4. Defaults

A .env file in the working directory is loaded before the environment is read.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.LLM.APIKey != "" {
			cfg.LLM.APIKey = "********"
		}

		if configFile := viper.ConfigFileUsed(); configFile != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", configFile)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		yamlData, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}

		fmt.Println(rule)
		fmt.Println("  Current Configuration")
		fmt.Println(rule)
		fmt.Println()
		fmt.Println(string(yamlData))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration file",
	Long:  `Create a default configuration file at ~/.ghostwriter/config.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error finding home directory: %w", err)
		}
		configPath := filepath.Join(home, ".ghostwriter", "config.yaml")

		if err := writeDefaultConfig(configPath); err != nil {
			return err
		}

		fmt.Printf("✓ Created default configuration: %s\n", configPath)
		fmt.Printf("\nTo view the configuration:\n")
		fmt.Printf("  ghostwriter config show\n")
		return nil
	},
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the configured LLM provider is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		p, closeRuns, err := a.pipeline()
		if err != nil {
			return err
		}
		defer closeRuns()

		ctx, cancel := context.WithTimeout(cmd.Context(), checkTimeout)
		defer cancel()
		if err := p.CheckProvider(ctx); err != nil {
			return err
		}
		fmt.Printf("✓ %s is available (model: %s)\n", a.cfg.LLM.Provider, a.cfg.LLM.Model)
		return nil
	},
}

const checkTimeout = 30 * time.Second

// writeDefaultConfig writes the commented default configuration to path.
// An existing file is never overwritten.
func writeDefaultConfig(path string) (err error) {
	if _, statErr := os.Stat(path); statErr == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	yamlData, err := yaml.Marshal(model.DefaultConfig())
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close config file: %w", closeErr)
		}
	}()

	printf := func(format string, a ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(f, format, a...)
	}

	printf("# Ghostwriter Configuration File\n")
	printf("#\n")
	printf("# Configuration hierarchy (highest to lowest priority):\n")
	printf("#   1. CLI flags\n")
	printf("#   2. Environment variables (GHOSTWRITER_*)\n")
	printf("#   3. This config file\n")
	printf("#   4. Built-in defaults\n\n")
	printf("%s", yamlData)
	printf("\n# API Keys (recommended to use environment variables instead):\n")
	printf("#   export OPENAI_API_KEY=sk-...\n")
	printf("#   export ANTHROPIC_API_KEY=sk-ant-...\n")
	printf("#   export OLLAMA_BASE_URL=http://localhost:11434\n")
	return err
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configCheckCmd)
}
