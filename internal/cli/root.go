package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/ghostwriter/internal/model"
)

// Version is set at build time
var Version = "dev"

var (
	cfgFile   string
	verbose   bool
	logFormat string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ghostwriter",
	Short: "Ghostwriter - build writing-style datasets from historical figures",
	Long: `Ghostwriter researches historical and public figures, analyzes their
writing style with an LLM and turns the result into an author profile and
a chat-format fine-tuning dataset.

Every LLM answer is parsed into structured data: figure lists, style
analyses, verification verdicts, style guides and training examples.
Saved responses can be parsed offline with 'ghostwriter parse'.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command. Cancelling ctx stops in-flight LLM calls.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ghostwriter %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.ghostwriter/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json (default from config)")
	rootCmd.PersistentFlags().String("provider", "", "LLM provider (openai, anthropic, ollama)")
	rootCmd.PersistentFlags().String("model", "", "LLM model name")
	rootCmd.PersistentFlags().String("data-dir", "", "directory holding authors and the run log")

	_ = viper.BindPFlag("llm.provider", rootCmd.PersistentFlags().Lookup("provider"))
	_ = viper.BindPFlag("llm.model", rootCmd.PersistentFlags().Lookup("model"))
	_ = viper.BindPFlag("storage.data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads .env, the config file and GHOSTWRITER_* variables
func initConfig() {
	// a missing .env is normal
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(filepath.Join(home, ".ghostwriter"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	if err := registerDefaults(model.DefaultConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error registering defaults: %v\n", err)
	}

	viper.SetEnvPrefix("GHOSTWRITER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	// omitempty keys have no registered default
	for _, key := range []string{"llm.api_key", "llm.base_url", "llm.http_proxy", "llm.https_proxy", "llm.no_proxy"} {
		_ = viper.BindEnv(key)
	}

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// registerDefaults makes every config key known to viper, so environment
// variables reach Unmarshal even when no config file sets the key.
func registerDefaults(cfg model.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return err
	}
	setDefaults("", tree)
	return nil
}

func setDefaults(prefix string, tree map[string]any) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			setDefaults(key, sub)
			continue
		}
		viper.SetDefault(key, v)
	}
}

// loadConfig merges defaults, config file, environment and flags
func loadConfig() (model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	applyEnvKeys(&cfg)
	cfg.Normalize()
	return cfg, nil
}

// applyEnvKeys fills provider credentials from the conventional variables
func applyEnvKeys(cfg *model.Config) {
	l := &cfg.LLM
	switch strings.ToLower(l.Provider) {
	case "openai":
		if l.APIKey == "" {
			l.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	case "anthropic", "claude":
		if l.APIKey == "" {
			l.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	case "ollama":
		if l.BaseURL == "" {
			l.BaseURL = os.Getenv("OLLAMA_BASE_URL")
		}
	}
}

// newLogger builds the slog handler on stderr
func newLogger(cfg model.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	format := cfg.Format
	if logFormat != "" {
		format = logFormat
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
