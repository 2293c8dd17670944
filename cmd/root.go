package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pable/go-ff-stats/internal/cache"
	"github.com/pable/go-ff-stats/internal/config"
	"github.com/pable/go-ff-stats/internal/source"
)

var (
	configPath   string
	fetchTimeout time.Duration
	redisURL     string
	verbose      bool

	// Settings only reachable through the config file.
	userAgent = "ffstats"
	cacheTTL  = cache.DefaultTTL

	cfg config.FileConfig
	log = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "ffstats",
	Short: "Free Fire WB circuit stats tool",
	Long: `Download the published WB leaderboard spreadsheets, merge every split into one
ranking per player and print leaderboards, profiles, comparisons and standings.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "path to TOML config file")
	rootCmd.PersistentFlags().DurationVar(&fetchTimeout, "timeout", source.DefaultTimeout, "per-sheet download timeout")
	rootCmd.PersistentFlags().StringVar(&redisURL, "redis", "", "Redis URL for caching sheet downloads (e.g. redis://localhost:6379/0)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging and parse diagnostics")

	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(valuateCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(cacheCmd)
}

// loadSettings reads the config file and applies it under the flags: a flag
// set on the command line always wins.
func loadSettings(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("timeout") {
		fetchTimeout = config.Dur(cfg.Fetch.Timeout, fetchTimeout)
	}
	if !flags.Changed("redis") {
		redisURL = config.String(cfg.Cache.RedisURL, redisURL)
	}
	userAgent = config.String(cfg.Fetch.UserAgent, userAgent)
	cacheTTL = config.Dur(cfg.Cache.TTL, cacheTTL)

	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	log.WithFields(logrus.Fields{
		"config":  configPath,
		"timeout": fetchTimeout,
		"cache":   redisURL != "",
	}).Debug("settings loaded")
	return nil
}
