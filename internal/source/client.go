// Package source fetches the published spreadsheet exports of the circuit
// and turns them into datasets for the merge.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/pable/go-ff-stats/internal/model"
	"github.com/pable/go-ff-stats/internal/sheet"
	"github.com/pable/go-ff-stats/internal/standings"
)

// DefaultTimeout bounds a single sheet download.
const DefaultTimeout = 30 * time.Second

// maxBody caps how much of a response is read into memory.
const maxBody = 16 << 20

// Cache stores response bodies by URL. A Get error of any kind is treated as
// a miss.
type Cache interface {
	Get(ctx context.Context, url string) (string, error)
	Set(ctx context.Context, url, body string) error
}

// Client downloads sheet exports.
type Client struct {
	http      *http.Client
	log       logrus.FieldLogger
	cache     Cache
	userAgent string

	leaderboardURL func(model.Split) string
}

// NewClient returns a client with the given per-request timeout (zero means
// DefaultTimeout). A nil logger uses the logrus standard logger.
func NewClient(timeout time.Duration, log logrus.FieldLogger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		http:           &http.Client{Timeout: timeout},
		log:            log,
		leaderboardURL: LeaderboardURL,
	}
}

// WithCache sets the response cache.
func (c *Client) WithCache(cache Cache) *Client {
	c.cache = cache
	return c
}

// WithUserAgent sets the User-Agent header sent with every request.
func (c *Client) WithUserAgent(ua string) *Client {
	c.userAgent = ua
	return c
}

// Get downloads url and returns the body as text.
func (c *Client) Get(ctx context.Context, url string) (string, error) {
	if c.cache != nil {
		if body, err := c.cache.Get(ctx, url); err == nil {
			c.log.WithField("url", url).Debug("cache hit")
			return body, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET %s: HTTP %d", url, resp.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", fmt.Errorf("GET %s: read body: %w", url, err)
	}
	body := string(b)

	if c.cache != nil {
		if err := c.cache.Set(ctx, url, body); err != nil {
			c.log.WithFields(logrus.Fields{"url": url, "err": err}).Warn("cache write failed")
		}
	}
	return body, nil
}

// Batch is the outcome of fetching a set of splits. Datasets has an entry
// for every requested split; failed splits map to an empty dataset.
type Batch struct {
	Datasets    map[model.Split][]model.PlayerRecord
	Diagnostics map[model.Split]sheet.Diagnostics
	Failed      []model.Split
}

// Fetch downloads and parses the leaderboards of the given splits
// concurrently. A failed split is logged and contributes an empty dataset; it
// never cancels the others. Fetch returns once every download has finished.
func (c *Client) Fetch(ctx context.Context, splits []model.Split) Batch {
	type slot struct {
		recs []model.PlayerRecord
		diag sheet.Diagnostics
		err  error
	}
	slots := make([]slot, len(splits))

	var g errgroup.Group
	for i, s := range splits {
		i, s := i, s
		g.Go(func() error {
			url := c.leaderboardURL(s)
			body, err := c.Get(ctx, url)
			if err != nil {
				slots[i].err = err
				c.log.WithFields(logrus.Fields{"split": s.Key(), "url": url, "err": err}).Warn("fetch failed")
				return nil
			}
			slots[i].recs, slots[i].diag = sheet.ParseLeaderboard(body, s)
			c.log.WithFields(logrus.Fields{
				"split":   s.Key(),
				"rows":    slots[i].diag.DataRows,
				"header":  slots[i].diag.HeaderIndex,
				"columns": slots[i].diag.Columns.Describe(),
			}).Debug("parsed leaderboard")
			return nil
		})
	}
	_ = g.Wait()

	b := Batch{
		Datasets:    make(map[model.Split][]model.PlayerRecord, len(splits)),
		Diagnostics: make(map[model.Split]sheet.Diagnostics, len(splits)),
	}
	for i, s := range splits {
		b.Datasets[s] = slots[i].recs
		if slots[i].err != nil {
			b.Failed = append(b.Failed, s)
			continue
		}
		b.Diagnostics[s] = slots[i].diag
	}
	return b
}

// StageStandings is a parsed season stage.
type StageStandings struct {
	Source StandingsSource
	Teams  []model.TeamStanding
	MVPs   [][]model.MVPStanding
}

// ErrNoStandings is returned when the team sheet of a stage cannot be
// downloaded.
var ErrNoStandings = errors.New("standings unavailable")

// FetchStandings downloads the team sheet and every MVP sheet of src
// concurrently. A failed MVP sheet is logged and left empty.
func (c *Client) FetchStandings(ctx context.Context, src StandingsSource) (StageStandings, error) {
	out := StageStandings{Source: src, MVPs: make([][]model.MVPStanding, len(src.MVPs))}

	var g errgroup.Group
	var teamErr error
	g.Go(func() error {
		body, err := c.Get(ctx, src.Teams)
		if err != nil {
			teamErr = err
			return nil
		}
		out.Teams = standings.ParseTeams(body)
		return nil
	})
	for i, url := range src.MVPs {
		i, url := i, url
		g.Go(func() error {
			body, err := c.Get(ctx, url)
			if err != nil {
				c.log.WithFields(logrus.Fields{"season": src.Season.Key(), "url": url, "err": err}).Warn("mvp fetch failed")
				return nil
			}
			out.MVPs[i] = standings.ParseMVPs(body)
			return nil
		})
	}
	_ = g.Wait()

	if teamErr != nil {
		return out, fmt.Errorf("%w: %s/%s: %v", ErrNoStandings, src.Season.Key(), src.Stage, teamErr)
	}
	return out, nil
}
