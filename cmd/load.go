package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/pable/go-ff-stats/internal/aggregator"
	"github.com/pable/go-ff-stats/internal/cache"
	"github.com/pable/go-ff-stats/internal/model"
	"github.com/pable/go-ff-stats/internal/report"
	"github.com/pable/go-ff-stats/internal/source"
	"github.com/pable/go-ff-stats/internal/view"
)

// newClient builds the sheet client from the settings. When a Redis URL is
// configured but unreachable, the client runs without a cache. The returned
// func releases the cache connection.
func newClient() (*source.Client, func()) {
	client := source.NewClient(fetchTimeout, log).WithUserAgent(userAgent)
	if redisURL == "" {
		return client, func() {}
	}
	rc, err := cache.NewRedisCache(redisURL, cacheTTL)
	if err != nil {
		log.WithFields(logrus.Fields{"url": redisURL, "err": err}).Warn("cache disabled")
		return client, func() {}
	}
	return client.WithCache(rc), func() { rc.Close() }
}

// loadView downloads and merges the splits of st. Progress and, with
// --verbose, parse diagnostics go to stderr.
func loadView(ctx context.Context, st view.State) ([]model.MergedPlayer, source.Batch, error) {
	client, release := newClient()
	defer release()

	fmt.Fprintf(os.Stderr, "Fetching %d sheet(s) for %s...\n", len(st.Splits()), st)
	players, b, err := source.NewLoader(client).LoadView(ctx, st)
	if err != nil {
		return nil, b, err
	}
	if verbose {
		report.PrintDiagnostics(os.Stderr, b.Diagnostics, b.Failed)
	}
	if len(b.Failed) == len(st.Splits()) {
		return nil, b, fmt.Errorf("no sheet could be downloaded for %s", st)
	}
	return players, b, nil
}

// resolveView is view.Resolve with the command's flag names in the error.
func resolveView(tab, split string) (view.State, error) {
	st, err := view.Resolve(tab, split)
	if err != nil {
		return st, fmt.Errorf("--tab %q --split %q: %w", tab, split, err)
	}
	return st, nil
}

// findPlayer looks a name up in players, naming the view on a miss.
func findPlayer(players []model.MergedPlayer, name string, st view.State) (model.MergedPlayer, error) {
	p, ok := aggregator.Find(players, name)
	if !ok {
		return p, fmt.Errorf("player %q not found in %s", name, st)
	}
	return p, nil
}

func loadedSheets(st view.State, b source.Batch) int {
	return len(st.Splits()) - len(b.Failed)
}
