package engine

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/anishtharur/Simple-Admin-UI/internal/domain"
)

// Snapshot is the read-only engine state the renderer paints from.
// PageCount may be 0 for an empty active set; rendering an idle pagination
// bar in that case is the renderer's business.
type Snapshot struct {
	Page        int  `json:"page"`
	PageCount   int  `json:"page_count"`
	ActiveCount int  `json:"active_count"`
	TotalCount  int  `json:"total_count"`
	SelectAll   bool `json:"select_all"`
	SearchError bool `json:"search_error"`
	SystemError bool `json:"system_error"`
	LoadError   bool `json:"load_error"`
}

// activeSet derives the set the console is currently working on: the
// canonical set when no filter is active, otherwise the records matching
// the search term. Callers must hold the mutex. The returned slice aliases
// the canonical records, so mutations through it stay consistent.
func (e *Engine) activeSet() []*domain.Record {
	if e.term == "" {
		return e.records
	}
	caser := cases.Fold()
	term := caser.String(e.term)
	matched := make([]*domain.Record, 0, len(e.records))
	for _, r := range e.records {
		if strings.Contains(caser.String(r.Name), term) ||
			strings.Contains(caser.String(r.Email), term) ||
			strings.Contains(caser.String(r.Role), term) {
			matched = append(matched, r)
		}
	}
	return matched
}

// pageCount is ceil(n / PageSize).
func pageCount(n int) int {
	return (n + PageSize - 1) / PageSize
}

// PageView returns a value snapshot of the records on the current page.
// The renderer must never mutate engine state directly, so the records are
// copied out rather than aliased.
func (e *Engine) PageView() []domain.Record {
	e.mu.Lock()
	defer e.mu.Unlock()

	active := e.activeSet()
	start := (e.page - 1) * PageSize
	if start >= len(active) {
		return []domain.Record{}
	}
	end := start + PageSize
	if end > len(active) {
		end = len(active)
	}

	view := make([]domain.Record, 0, end-start)
	for _, r := range active[start:end] {
		view = append(view, *r)
	}
	return view
}

// Snapshot returns the current derived state counters and error flags.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	active := e.activeSet()
	return Snapshot{
		Page:        e.page,
		PageCount:   pageCount(len(active)),
		ActiveCount: len(active),
		TotalCount:  len(e.records),
		SelectAll:   e.selectAll,
		SearchError: e.searchErr,
		SystemError: e.systemErr,
		LoadError:   e.loadErr,
	}
}
