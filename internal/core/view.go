// internal/core/view.go
package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/AbdulAhad210904/Pro-connect/internal/domain"
)

// ViewMode is the card layout of a list. It never affects which records
// are shown.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// SessionPageSize is how many connected devices are shown before "show all".
const SessionPageSize = 6

// ParseViewMode validates a view mode string.
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(s) {
	case ViewGrid, ViewList:
		return ViewMode(s), nil
	}
	return "", fmt.Errorf("invalid 'view' parameter: must be 'grid' or 'list'")
}

// Visible returns the slice prefix to render. pageSize <= 0 means unbounded.
func Visible[T any](items []T, pageSize int, showAll bool) []T {
	if showAll || pageSize <= 0 || len(items) <= pageSize {
		return items
	}
	return items[:pageSize]
}

// HasMore reports whether a "show all" toggle would reveal more items.
func HasMore(total, pageSize int, showAll bool) bool {
	return !showAll && pageSize > 0 && total > pageSize
}

// LoadState is the lifecycle of a fetched list.
type LoadState string

const (
	StateIdle    LoadState = "idle"
	StateLoading LoadState = "loading"
	StateLoaded  LoadState = "loaded"
	StateError   LoadState = "error"
)

// ProjectFetcher loads projects for the given criteria from the remote API.
type ProjectFetcher func(ctx context.Context, c FilterCriteria) ([]domain.Project, error)

// BrowserView is a snapshot of a Browser for rendering.
type BrowserView struct {
	State    LoadState
	Criteria FilterCriteria
	Mode     ViewMode
	ShowAll  bool
	Projects []domain.Project
	Total    int
	HasMore  bool
	Err      error
}

// Browser holds the page state of the project browser: criteria, the last
// fetched list, and presentation toggles. Every criteria change re-enters
// Loading and refetches; filtering then runs locally on the result.
type Browser struct {
	mu       sync.Mutex
	fetch    ProjectFetcher
	pageSize int

	state    LoadState
	criteria FilterCriteria
	fetched  []domain.Project
	err      error
	mode     ViewMode
	showAll  bool
	gen      uint64
}

// NewBrowser creates an idle browser. pageSize <= 0 shows everything.
func NewBrowser(fetch ProjectFetcher, pageSize int) *Browser {
	return &Browser{fetch: fetch, pageSize: pageSize, state: StateIdle, mode: ViewGrid}
}

// SetCriteria replaces the criteria and reloads. A response that arrives
// after a newer SetCriteria call is dropped.
func (b *Browser) SetCriteria(ctx context.Context, c FilterCriteria) error {
	b.mu.Lock()
	b.gen++
	gen := b.gen
	b.criteria = c
	b.state = StateLoading
	b.err = nil
	b.mu.Unlock()

	projects, err := b.fetch(ctx, c)

	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.gen {
		return nil
	}
	if err != nil {
		b.state = StateError
		b.err = err
		return err
	}
	b.fetched = projects
	b.state = StateLoaded
	return nil
}

// SetViewMode switches the layout without refetching.
func (b *Browser) SetViewMode(m ViewMode) {
	b.mu.Lock()
	b.mode = m
	b.mu.Unlock()
}

// SetShowAll toggles whether the full list is rendered. Pure view state.
func (b *Browser) SetShowAll(showAll bool) {
	b.mu.Lock()
	b.showAll = showAll
	b.mu.Unlock()
}

// View returns the current state with the filtered projects.
func (b *Browser) View() BrowserView {
	b.mu.Lock()
	defer b.mu.Unlock()

	v := BrowserView{
		State:    b.state,
		Criteria: b.criteria,
		Mode:     b.mode,
		ShowAll:  b.showAll,
		Err:      b.err,
	}
	if b.state != StateLoaded {
		return v
	}
	filtered := Filter(b.fetched, b.criteria)
	v.Total = len(filtered)
	v.Projects = Visible(filtered, b.pageSize, b.showAll)
	v.HasMore = HasMore(len(filtered), b.pageSize, b.showAll)
	return v
}
