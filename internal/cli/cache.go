package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/ghostwriter/internal/cache"
	"github.com/ppiankov/ghostwriter/internal/model"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the LLM response cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached LLM response",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := clearCache(cfg.Cache); err != nil {
			return err
		}
		fmt.Printf("✓ Cleared response cache in %s\n", cfg.Cache.Dir)
		return nil
	},
}

// clearCache empties the configured cache directory even when caching is
// currently disabled.
func clearCache(cfg model.CacheConfig) error {
	cfg.Enabled = true
	if err := cache.New(cfg).Clear(); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
