package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-ff-stats/internal/cache"
	"github.com/pable/go-ff-stats/internal/model"
	"github.com/pable/go-ff-stats/internal/source"
)

var cacheForce bool

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the Redis sheet cache",
}

// cacheClearCmd deletes cached sheet downloads.
var cacheClearCmd = &cobra.Command{
	Use:   "clear [split...]",
	Short: "Delete cached sheet downloads",
	Long: `Delete cached sheet downloads from Redis. With split keys (wb2024s1 ...) only
those leaderboards are dropped; without, every ffstats entry is removed.
Requires --redis or cache.redis_url in the config file.`,
	RunE: runCacheClear,
}

func init() {
	cacheClearCmd.Flags().BoolVarP(&cacheForce, "force", "f", false, "skip confirmation prompt")
	cacheCmd.AddCommand(cacheClearCmd)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	if redisURL == "" {
		return fmt.Errorf("no cache configured: pass --redis or set cache.redis_url")
	}

	var urls []string
	for _, a := range args {
		s, err := model.ParseSplit(a)
		if err != nil {
			return err
		}
		urls = append(urls, source.LeaderboardURL(s))
	}

	if !cacheForce {
		target := "every cached sheet"
		if len(urls) > 0 {
			target = fmt.Sprintf("%d cached leaderboard(s)", len(urls))
		}
		fmt.Fprintf(os.Stderr, "This will delete %s from %s\n", target, redisURL)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}

	rc, err := cache.NewRedisCache(redisURL, cacheTTL)
	if err != nil {
		return fmt.Errorf("connect cache: %w", err)
	}
	defer rc.Close()

	if len(urls) > 0 {
		if err := rc.Delete(cmd.Context(), urls...); err != nil {
			return fmt.Errorf("delete: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Deleted %d leaderboard(s)\n", len(urls))
		return nil
	}
	n, err := rc.Clear(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Deleted %d cached sheet(s)\n", n)
	return nil
}
