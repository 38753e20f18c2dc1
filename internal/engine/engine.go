// Package engine holds the in-memory record set behind the admin console.
//
// The engine owns the canonical, load-ordered list of records and derives
// every other view from it on demand: the filtered set from the active
// search term, and the current page from the filtered set. Mutations only
// ever touch the canonical list, so the derived views cannot drift.
package engine

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/anishtharur/Simple-Admin-UI/internal/domain"
	"github.com/anishtharur/Simple-Admin-UI/internal/logger"
	"github.com/anishtharur/Simple-Admin-UI/internal/metrics"
)

// PageSize is the fixed number of records per page.
const PageSize = 10

// Engine is the record-set engine. All commands serialize on the internal
// mutex and run to completion before the next one is accepted, so the HTTP
// surface can call it from concurrent handlers.
type Engine struct {
	mu        sync.Mutex
	records   []*domain.Record // canonical set, load order, unique by id
	term      string           // active search term, "" means no filter
	page      int              // 1-based
	selectAll bool             // header checkbox toggle, not a derived aggregate
	searchErr bool
	systemErr bool
	loadErr   bool
}

// New creates an empty engine positioned on page 1.
func New() *Engine {
	return &Engine{page: 1}
}

// run executes a mutating command under the lock, re-checks the engine
// invariants afterwards and surfaces a failure as the generic system error
// flag. Partial application on fault is accepted: commands are simple list
// operations with no transactional requirement.
func (e *Engine) run(command string, fn func() error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := fn()
	if err == nil {
		err = e.checkInvariants()
	}
	if err != nil {
		e.systemErr = true
		logger.Error("command failed",
			slog.String("command", command),
			slog.String("error", err.Error()))
		metrics.ObserveCommand(command, "error")
		return
	}
	e.systemErr = false
	metrics.ObserveCommand(command, "ok")
	metrics.SetRecordCount(len(e.records))
}

// checkInvariants verifies the structural invariants of the record set:
// ids stay unique and the current page stays within the active set.
func (e *Engine) checkInvariants() error {
	seen := make(map[string]struct{}, len(e.records))
	for _, r := range e.records {
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("duplicate record id %q", r.ID)
		}
		seen[r.ID] = struct{}{}
	}

	last := pageCount(len(e.activeSet()))
	if last < 1 {
		last = 1
	}
	if e.page < 1 || e.page > last {
		return fmt.Errorf("page %d out of range [1,%d]", e.page, last)
	}
	return nil
}

// Load replaces the canonical set wholesale with the given seed entries,
// decorated with default console state. Duplicate ids are dropped (first
// entry wins). The page resets to 1 and any active filter is cleared.
// Repeated calls fully replace state, there is no merge.
func (e *Engine) Load(raw []domain.RawRecord) {
	e.run("load", func() error {
		records := make([]*domain.Record, 0, len(raw))
		seen := make(map[string]struct{}, len(raw))
		dropped := 0
		for _, entry := range raw {
			if _, dup := seen[entry.ID]; dup {
				dropped++
				continue
			}
			seen[entry.ID] = struct{}{}
			rec := domain.FromRaw(entry)
			records = append(records, &rec)
		}

		e.records = records
		e.term = ""
		e.page = 1
		e.selectAll = false
		e.searchErr = false
		e.loadErr = false

		logger.Info("record set loaded",
			slog.Int("records", len(records)),
			slog.Int("duplicates_dropped", dropped))
		return nil
	})
}

// MarkLoadFailed flags that the seed fetch failed. The canonical set is
// left as is (normally empty) and the engine stays fully usable.
func (e *Engine) MarkLoadFailed() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loadErr = true
}

// Search applies a search term. An empty term deactivates the filter; a
// non-empty term filters by case-folded substring match against name,
// email or role. Either way the page resets to 1. The search error flag is
// raised only for an active filter with zero matches; recomputation is
// always from scratch against the canonical set.
func (e *Engine) Search(term string) {
	e.run("search", func() error {
		e.term = term
		e.page = 1
		if term == "" {
			e.searchErr = false
			return nil
		}
		matched := len(e.activeSet())
		e.searchErr = matched == 0
		if e.searchErr {
			metrics.ObserveSearch("miss")
		} else {
			metrics.ObserveSearch("hit")
		}
		return nil
	})
}

// Delete removes the record with the given id from the canonical set.
// Unknown ids are a no-op, not an error. The current page is clamped so
// pagination never points past the last non-empty page.
func (e *Engine) Delete(id string) {
	e.run("delete", func() error {
		for i, r := range e.records {
			if r.ID == id {
				e.records = append(e.records[:i], e.records[i+1:]...)
				break
			}
		}
		e.clampPage()
		return nil
	})
}

// DeleteSelected removes every selected record in the active set. With a
// filter active, selected records outside the filter survive. The
// select-all toggle resets to false even when nothing was selected.
func (e *Engine) DeleteSelected() {
	e.run("delete_selected", func() error {
		doomed := make(map[string]struct{})
		for _, r := range e.activeSet() {
			if r.Selected {
				doomed[r.ID] = struct{}{}
			}
		}
		if len(doomed) > 0 {
			kept := make([]*domain.Record, 0, len(e.records)-len(doomed))
			for _, r := range e.records {
				if _, gone := doomed[r.ID]; !gone {
					kept = append(kept, r)
				}
			}
			e.records = kept
		}
		e.selectAll = false
		e.clampPage()
		return nil
	})
}

// BeginEdit puts the record into editing mode. Other records already in
// editing mode are left alone; concurrent edits are allowed.
func (e *Engine) BeginEdit(id string) {
	e.run("begin_edit", func() error {
		if r := e.find(id); r != nil {
			r.Editing = true
		}
		return nil
	})
}

// CommitEdit writes the submitted field values and leaves editing mode.
// A record deleted mid-edit is a no-op.
func (e *Engine) CommitEdit(id, name, email, role string) {
	e.run("commit_edit", func() error {
		if r := e.find(id); r != nil {
			r.Name = name
			r.Email = email
			r.Role = role
			r.Editing = false
		}
		return nil
	})
}

// CancelEdit leaves editing mode without touching the record's fields.
// In-progress values live in the renderer until commit, so cancel is a
// true no-op against the record set.
func (e *Engine) CancelEdit(id string) {
	e.run("cancel_edit", func() error {
		if r := e.find(id); r != nil {
			r.Editing = false
		}
		return nil
	})
}

// ToggleSelect flips the selection of one record in the active set.
func (e *Engine) ToggleSelect(id string) {
	e.run("toggle_select", func() error {
		for _, r := range e.activeSet() {
			if r.ID == id {
				r.Selected = !r.Selected
				break
			}
		}
		return nil
	})
}

// ToggleSelectPage flips the selection of exactly the records in the
// active set whose id is listed (the ids visible on the current page), and
// flips the select-all toggle. The toggle is not reconciled against
// per-row state: repeated calls alternate regardless of manual changes
// made in between.
func (e *Engine) ToggleSelectPage(ids []string) {
	e.run("toggle_select_page", func() error {
		onPage := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			onPage[id] = struct{}{}
		}
		for _, r := range e.activeSet() {
			if _, ok := onPage[r.ID]; ok {
				r.Selected = !r.Selected
			}
		}
		e.selectAll = !e.selectAll
		return nil
	})
}

// GoToPage moves to the given page, clamping silently to the valid range.
// Renderer controls are built from valid page numbers, so out-of-range
// requests should not occur; the clamp covers them anyway.
func (e *Engine) GoToPage(n int) {
	e.run("go_to_page", func() error {
		e.page = n
		e.clampPage()
		return nil
	})
}

// find returns the canonical record with the given id, or nil.
func (e *Engine) find(id string) *domain.Record {
	for _, r := range e.records {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// clampPage pulls the current page back into [1, pageCount] after the
// active set shrank. Pagination must never show an empty page while
// non-empty pages exist below it.
func (e *Engine) clampPage() {
	last := pageCount(len(e.activeSet()))
	if last < 1 {
		last = 1
	}
	if e.page > last {
		e.page = last
	}
	if e.page < 1 {
		e.page = 1
	}
}
