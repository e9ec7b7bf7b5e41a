package cmd

import (
	"fmt"
	"os"

	"github.com/demengc/bwell-logkit/internal"
	"github.com/demengc/bwell-logkit/internal/config"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	encoding   string
	cacheDir   string
	clearCache bool
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"

	// cfg holds flag defaults read from BWELL_* environment variables
	cfg = loadConfig()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bwell-logkit",
	Short: "Inspect and export bWell VR event logs",
	Long: `A CLI tool to load, repair, slice and export bWell VR event logs.

Log files are JSON objects with a "data" array of records. Files cut off
mid-write are repaired before parsing, duplicate records are dropped and
records are ordered by game time.

Quick Start:
  bwell-logkit stats session.json                  # Summary statistics
  bwell-logkit scenes session.json --sort epoch    # Scene instances
  bwell-logkit show session.json --scene MainMenu  # Records of one scene
  bwell-logkit export session.json --format csv    # Export as CSV
  bwell-logkit batch ./logs --workers 8            # Load a whole directory

Defaults can be set with BWELL_LOG_LEVEL, BWELL_ENCODING, BWELL_WORKERS,
BWELL_PATTERN, BWELL_EXPORT_FORMAT, BWELL_OUT_DIR, BWELL_CACHE_DIR and
BWELL_SKIP_ERRORS.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		internal.SetLogLevel(internal.ParseLogLevel(cfg.LogLevel))
		if verbose {
			internal.SetVerbose(true)
		}

		if clearCache {
			if cacheDir == "" {
				return fmt.Errorf("--clear-cache requires --cache-dir or BWELL_CACHE_DIR")
			}
			p := printer(cmd)
			if err := internal.NewCacheManager(cacheDir).ClearCache(); err != nil {
				p.Warning("Failed to clear cache %s: %v", cacheDir, err)
			} else {
				p.Info("Cache cleared: %s", cacheDir)
			}
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printer(rootCmd).Error("Error: %v", err)
		os.Exit(1)
	}
}

func loadConfig() config.Options {
	opts, err := config.Load()
	if err != nil {
		internal.LogWarn("Ignoring environment configuration: %v", err)
	}
	return opts
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&encoding, "encoding", cfg.Encoding, "Text encoding of log files (e.g. utf-8, latin1, utf-16)")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", cfg.CacheDir, "Cache parsed logs in this directory (disabled when empty)")
	rootCmd.PersistentFlags().BoolVar(&clearCache, "clear-cache", false, "Clear the cache before running")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
