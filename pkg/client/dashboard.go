package client

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DashboardState names the dashboard's loading lifecycle
type DashboardState int

const (
	StateIdle DashboardState = iota
	StateLoading
	StateLoaded
	StateErrored
)

func (s DashboardState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Dashboard holds the data a snack dashboard renders: the ranked lists,
// the search text, and the currently selected snack's detail view, with a
// single idle/loading/loaded/errored lifecycle covering whichever fetch is
// in flight. Safe for concurrent use.
type Dashboard struct {
	client *Client

	mu       sync.RWMutex
	state    DashboardState
	trending []TrendingSnack
	all      []TrendingSnack
	query    string
	selected *Detail
	err      error
}

// NewDashboard creates an idle dashboard backed by the given client
func NewDashboard(c *Client) *Dashboard {
	return &Dashboard{client: c, state: StateIdle}
}

// Load fetches the trending and full ranked lists in parallel. On any
// failure the dashboard moves to the errored state and keeps the error.
func (d *Dashboard) Load(ctx context.Context) error {
	d.setLoading()

	var trending, all []TrendingSnack
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		trending, err = d.client.TrendingSnacks(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		all, err = d.client.AllSnacks(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		d.setError(err)
		return err
	}

	d.mu.Lock()
	d.state = StateLoaded
	d.trending = trending
	d.all = all
	d.err = nil
	d.mu.Unlock()
	return nil
}

// Select fetches the detail view for one snack and makes it the current
// selection
func (d *Dashboard) Select(ctx context.Context, id int64) error {
	d.setLoading()

	detail, err := d.client.SnackDetail(ctx, id)
	if err != nil {
		d.setError(err)
		return err
	}

	d.mu.Lock()
	d.state = StateLoaded
	d.selected = detail
	d.err = nil
	d.mu.Unlock()
	return nil
}

// Search runs a ranked search for the query and records it as the current
// search text
func (d *Dashboard) Search(ctx context.Context, query string) ([]TrendingSnack, error) {
	d.mu.Lock()
	d.query = query
	d.mu.Unlock()
	return d.client.SearchSnacks(ctx, query)
}

// Back drops the current selection and any error, returning to the list
// view when lists are loaded and to idle otherwise
func (d *Dashboard) Back() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selected = nil
	d.err = nil
	if d.trending != nil || d.all != nil {
		d.state = StateLoaded
	} else {
		d.state = StateIdle
	}
}

// Reset returns the dashboard to its initial idle state
func (d *Dashboard) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = StateIdle
	d.trending = nil
	d.all = nil
	d.query = ""
	d.selected = nil
	d.err = nil
}

// State returns the current lifecycle state
func (d *Dashboard) State() DashboardState {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

// Trending returns the loaded trending list
func (d *Dashboard) Trending() []TrendingSnack {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.trending
}

// All returns the loaded full ranked list
func (d *Dashboard) All() []TrendingSnack {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.all
}

// Query returns the current search text
func (d *Dashboard) Query() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.query
}

// Selected returns the detail view of the selected snack, or nil
func (d *Dashboard) Selected() *Detail {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.selected
}

// Err returns the error from the last failed load, if any
func (d *Dashboard) Err() error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.err
}

func (d *Dashboard) setLoading() {
	d.mu.Lock()
	d.state = StateLoading
	d.mu.Unlock()
}

func (d *Dashboard) setError(err error) {
	d.mu.Lock()
	d.state = StateErrored
	d.err = err
	d.mu.Unlock()
}
