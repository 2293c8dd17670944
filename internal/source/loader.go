package source

import (
	"context"
	"errors"
	"sync"

	"github.com/pable/go-ff-stats/internal/aggregator"
	"github.com/pable/go-ff-stats/internal/model"
	"github.com/pable/go-ff-stats/internal/view"
)

// ErrSuperseded is returned by Loader.Load when a newer load started before
// this one finished. Its data must not be shown.
var ErrSuperseded = errors.New("load superseded by a newer request")

// Fetcher fetches a batch of splits. *Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, splits []model.Split) Batch
}

// Loader serialises view loads: every Load gets a generation number, starting
// a new load cancels the previous one, and only the newest load may return
// data.
type Loader struct {
	fetcher Fetcher

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// NewLoader returns a loader over f.
func NewLoader(f Fetcher) *Loader {
	return &Loader{fetcher: f}
}

// Generation returns the number of the most recently started load.
func (l *Loader) Generation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen
}

// Load fetches splits, or returns ErrSuperseded if another Load started in
// the meantime.
func (l *Loader) Load(ctx context.Context, splits []model.Split) (Batch, error) {
	ctx, gen := l.begin(ctx)
	b := l.fetcher.Fetch(ctx, splits)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		return Batch{}, ErrSuperseded
	}
	l.cancel()
	l.cancel = nil
	return b, nil
}

// LoadView fetches the splits of st and merges them under the tab's label.
func (l *Loader) LoadView(ctx context.Context, st view.State) ([]model.MergedPlayer, Batch, error) {
	splits := st.Splits()
	b, err := l.Load(ctx, splits)
	if err != nil {
		return nil, b, err
	}
	return aggregator.Merge(aggregator.Select(b.Datasets, splits), st.Events()), b, nil
}

func (l *Loader) begin(parent context.Context) (context.Context, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	l.gen++
	l.cancel = cancel
	return ctx, l.gen
}
