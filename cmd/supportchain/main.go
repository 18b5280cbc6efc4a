package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"supportchain/internal/config"
)

var (
	// Global flags
	verbose    bool
	configPath string
	apiKey     string
	model      string
	timeout    time.Duration

	// Logger
	logger *zap.Logger

	// Loaded configuration
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:     "supportchain",
	Short:   "supportchain - staged Gemini triage for customer support queries",
	Version: "1.0.0",
	Long: `supportchain turns a raw customer support message into a drafted
reply through five sequential Gemini calls: intent interpretation,
candidate categories, category selection, missing-detail extraction,
and the final response. Each stage's output feeds the stages after it.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		applyFlagOverrides(cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		// Initialize logger
		zcfg := zap.NewProductionConfig()
		level, lerr := zapcore.ParseLevel(cfg.Logging.Level)
		if lerr != nil {
			level = zapcore.InfoLevel
		}
		if verbose {
			level = zapcore.DebugLevel
		}
		zcfg.Level = zap.NewAtomicLevelAt(level)
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// applyFlagOverrides lets explicit flags win over file and env values.
func applyFlagOverrides(c *config.Config) {
	if apiKey != "" {
		c.LLM.APIKey = apiKey
	}
	if model != "" {
		c.LLM.Model = model
	}
	if timeout > 0 {
		c.LLM.Timeout = timeout.String()
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "Path to config file")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Gemini API key (or set GEMINI_API_KEY env)")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "Gemini model override")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "LLM call timeout (overrides config)")

	// Add commands to root
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(stagesCmd)
	rootCmd.AddCommand(statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
