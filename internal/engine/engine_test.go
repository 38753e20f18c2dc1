package engine_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anishtharur/Simple-Admin-UI/internal/domain"
	"github.com/anishtharur/Simple-Admin-UI/internal/engine"
)

// seed builds n raw records with ids "1".."n". Roles alternate between
// member and admin so role searches have something to bite on.
func seed(n int) []domain.RawRecord {
	records := make([]domain.RawRecord, 0, n)
	for i := 1; i <= n; i++ {
		role := "member"
		if i%3 == 0 {
			role = "admin"
		}
		records = append(records, domain.RawRecord{
			ID:    fmt.Sprintf("%d", i),
			Name:  fmt.Sprintf("User %02d", i),
			Email: fmt.Sprintf("user%02d@example.com", i),
			Role:  role,
		})
	}
	return records
}

func loaded(t *testing.T, n int) *engine.Engine {
	t.Helper()
	e := engine.New()
	e.Load(seed(n))
	return e
}

func pageIDs(e *engine.Engine) []string {
	view := e.PageView()
	ids := make([]string, 0, len(view))
	for _, r := range view {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestLoad(t *testing.T) {
	t.Run("decorates records with default console state", func(t *testing.T) {
		e := loaded(t, 3)

		for _, r := range e.PageView() {
			assert.False(t, r.Selected)
			assert.False(t, r.Editing)
		}
	})

	t.Run("keeps load order", func(t *testing.T) {
		e := loaded(t, 5)

		view := e.PageView()
		require.Len(t, view, 5)
		for i, r := range view {
			assert.Equal(t, fmt.Sprintf("%d", i+1), r.ID)
		}
	})

	t.Run("drops duplicate ids keeping the first entry", func(t *testing.T) {
		e := engine.New()
		e.Load([]domain.RawRecord{
			{ID: "1", Name: "First", Email: "first@example.com", Role: "member"},
			{ID: "1", Name: "Second", Email: "second@example.com", Role: "admin"},
			{ID: "2", Name: "Third", Email: "third@example.com", Role: "member"},
		})

		view := e.PageView()
		require.Len(t, view, 2)
		assert.Equal(t, "First", view[0].Name)
	})

	t.Run("repeat load replaces state wholesale", func(t *testing.T) {
		e := loaded(t, 12)
		e.Search("zzz-no-match")
		e.ToggleSelect("1")

		e.Load(seed(4))

		snap := e.Snapshot()
		assert.Equal(t, 4, snap.TotalCount)
		assert.Equal(t, 4, snap.ActiveCount)
		assert.Equal(t, 1, snap.Page)
		assert.False(t, snap.SearchError)
		assert.False(t, snap.SelectAll)
		for _, r := range e.PageView() {
			assert.False(t, r.Selected)
		}
	})

	t.Run("load clears a prior load failure", func(t *testing.T) {
		e := engine.New()
		e.MarkLoadFailed()
		require.True(t, e.Snapshot().LoadError)

		e.Load(seed(1))
		assert.False(t, e.Snapshot().LoadError)
	})
}

func TestMarkLoadFailed(t *testing.T) {
	e := engine.New()
	e.MarkLoadFailed()

	snap := e.Snapshot()
	assert.True(t, snap.LoadError)
	assert.Equal(t, 0, snap.TotalCount)
	assert.Empty(t, e.PageView())
}

func TestSearch(t *testing.T) {
	t.Run("matches case-insensitively against name, email or role", func(t *testing.T) {
		e := engine.New()
		e.Load([]domain.RawRecord{
			{ID: "1", Name: "Aaron Miles", Email: "aaron@example.com", Role: "member"},
			{ID: "2", Name: "Mendy Bellick", Email: "mendy@example.com", Role: "admin"},
			{ID: "3", Name: "Sarah Kerr", Email: "sarah.admin@example.com", Role: "member"},
		})

		// A record matches when ANY of name, email or role contains the
		// folded term.
		tests := []struct {
			term string
			ids  []string
		}{
			{"AARON", []string{"1"}},
			{"mendy@", []string{"2"}},
			{"admin", []string{"2", "3"}},
			{"e", []string{"1", "2", "3"}},
			{"no-such-thing", []string{}},
		}
		for _, tt := range tests {
			t.Run(tt.term, func(t *testing.T) {
				e.Search(tt.term)
				assert.Equal(t, tt.ids, idsOf(e.PageView()))
			})
		}
	})

	t.Run("zero matches raises the search error flag", func(t *testing.T) {
		e := loaded(t, 3)

		e.Search("zzz-no-match")
		snap := e.Snapshot()
		assert.True(t, snap.SearchError)
		assert.Equal(t, 0, snap.ActiveCount)
		assert.Equal(t, 3, snap.TotalCount)
	})

	t.Run("a matching search clears the flag", func(t *testing.T) {
		e := loaded(t, 3)
		e.Search("zzz-no-match")

		e.Search("User")
		assert.False(t, e.Snapshot().SearchError)
	})

	t.Run("empty term deactivates the filter and clears the flag", func(t *testing.T) {
		e := loaded(t, 3)
		e.Search("zzz-no-match")

		e.Search("")
		snap := e.Snapshot()
		assert.False(t, snap.SearchError)
		assert.Equal(t, 3, snap.ActiveCount)
	})

	t.Run("search resets to page 1", func(t *testing.T) {
		e := loaded(t, 25)
		e.GoToPage(3)

		e.Search("User")
		assert.Equal(t, 1, e.Snapshot().Page)

		e.GoToPage(2)
		e.Search("")
		assert.Equal(t, 1, e.Snapshot().Page)
	})

	t.Run("empty term with no prior filter leaves the view unchanged", func(t *testing.T) {
		e := loaded(t, 12)
		before := e.PageView()

		e.Search("")
		assert.Equal(t, before, e.PageView())
	})
}

func TestDelete(t *testing.T) {
	t.Run("removes the record", func(t *testing.T) {
		e := loaded(t, 5)

		e.Delete("3")

		snap := e.Snapshot()
		assert.Equal(t, 4, snap.TotalCount)
		assert.NotContains(t, idsOf(e.PageView()), "3")
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		e := loaded(t, 5)

		e.Delete("999")

		snap := e.Snapshot()
		assert.Equal(t, 5, snap.TotalCount)
		assert.False(t, snap.SystemError)
	})

	t.Run("deleting the only record on the last page clamps the page", func(t *testing.T) {
		e := loaded(t, 11)
		e.GoToPage(2)
		require.Equal(t, 2, e.Snapshot().PageCount)

		e.Delete("11")

		snap := e.Snapshot()
		assert.Equal(t, 1, snap.PageCount)
		assert.Equal(t, 1, snap.Page)
		assert.Len(t, e.PageView(), 10)
	})

	t.Run("delete under an active filter hits the canonical set too", func(t *testing.T) {
		e := loaded(t, 12)
		e.Search("User 05")
		require.Equal(t, 1, e.Snapshot().ActiveCount)

		e.Delete("5")

		assert.Equal(t, 0, e.Snapshot().ActiveCount)
		e.Search("")
		assert.Equal(t, 11, e.Snapshot().TotalCount)
	})
}

func TestDeleteSelected(t *testing.T) {
	t.Run("removes every selected record", func(t *testing.T) {
		e := loaded(t, 5)
		e.ToggleSelect("2")
		e.ToggleSelect("4")

		e.DeleteSelected()

		assert.Equal(t, []string{"1", "3", "5"}, idsOf(e.PageView()))
	})

	t.Run("nothing selected is a no-op that still resets the select-all flag", func(t *testing.T) {
		e := loaded(t, 5)
		e.ToggleSelectPage(nil) // flips the flag without selecting anything
		require.True(t, e.Snapshot().SelectAll)

		e.DeleteSelected()

		snap := e.Snapshot()
		assert.Equal(t, 5, snap.TotalCount)
		assert.False(t, snap.SelectAll)
	})

	t.Run("selected records outside an active filter survive", func(t *testing.T) {
		e := loaded(t, 12)
		e.ToggleSelect("1")
		e.Search("User 02")
		e.ToggleSelect("2")

		e.DeleteSelected()

		e.Search("")
		snap := e.Snapshot()
		assert.Equal(t, 11, snap.TotalCount)
		assert.Contains(t, idsOf(e.PageView()), "1")
		assert.NotContains(t, idsOf(e.PageView()), "2")
	})

	t.Run("clamps the page after a shrink", func(t *testing.T) {
		e := loaded(t, 12)
		e.ToggleSelect("11")
		e.ToggleSelect("12")
		e.GoToPage(2)

		e.DeleteSelected()

		snap := e.Snapshot()
		assert.Equal(t, 1, snap.Page)
		assert.Equal(t, 1, snap.PageCount)
	})
}

func TestEditLifecycle(t *testing.T) {
	t.Run("begin puts the record into editing mode", func(t *testing.T) {
		e := loaded(t, 3)

		e.BeginEdit("2")

		view := e.PageView()
		assert.False(t, view[0].Editing)
		assert.True(t, view[1].Editing)
	})

	t.Run("commit writes fields and leaves editing mode", func(t *testing.T) {
		e := loaded(t, 3)
		e.BeginEdit("2")

		e.CommitEdit("2", "New Name", "new@example.com", "admin")

		r := e.PageView()[1]
		assert.Equal(t, "New Name", r.Name)
		assert.Equal(t, "new@example.com", r.Email)
		assert.Equal(t, "admin", r.Role)
		assert.False(t, r.Editing)
	})

	t.Run("begin then cancel restores the record exactly", func(t *testing.T) {
		e := loaded(t, 3)
		before := e.PageView()[1]

		e.BeginEdit("2")
		e.CancelEdit("2")

		assert.Equal(t, before, e.PageView()[1])
	})

	t.Run("multiple records can be mid-edit concurrently", func(t *testing.T) {
		e := loaded(t, 3)

		e.BeginEdit("1")
		e.BeginEdit("3")

		view := e.PageView()
		assert.True(t, view[0].Editing)
		assert.False(t, view[1].Editing)
		assert.True(t, view[2].Editing)
	})

	t.Run("record deleted mid-edit just disappears", func(t *testing.T) {
		e := loaded(t, 3)
		e.BeginEdit("2")

		e.Delete("2")
		e.CommitEdit("2", "Ghost", "ghost@example.com", "member")

		snap := e.Snapshot()
		assert.Equal(t, 2, snap.TotalCount)
		assert.False(t, snap.SystemError)
	})

	t.Run("edit commands on unknown ids are no-ops", func(t *testing.T) {
		e := loaded(t, 3)

		e.BeginEdit("999")
		e.CommitEdit("999", "x", "x@example.com", "member")
		e.CancelEdit("999")

		assert.False(t, e.Snapshot().SystemError)
	})
}

func TestToggleSelect(t *testing.T) {
	t.Run("is self-inverse", func(t *testing.T) {
		e := loaded(t, 3)

		e.ToggleSelect("2")
		assert.True(t, e.PageView()[1].Selected)

		e.ToggleSelect("2")
		assert.False(t, e.PageView()[1].Selected)
	})

	t.Run("only reaches records in the active set", func(t *testing.T) {
		e := loaded(t, 12)
		e.Search("User 01")

		e.ToggleSelect("2") // filtered out

		e.Search("")
		assert.False(t, e.PageView()[1].Selected)
	})
}

func TestToggleSelectPage(t *testing.T) {
	t.Run("flips exactly the given ids and the select-all flag", func(t *testing.T) {
		e := loaded(t, 12)

		e.ToggleSelectPage(pageIDs(e))

		view := e.PageView()
		require.Len(t, view, 10)
		for _, r := range view {
			assert.True(t, r.Selected)
		}
		snap := e.Snapshot()
		assert.True(t, snap.SelectAll)

		e.GoToPage(2)
		for _, r := range e.PageView() {
			assert.False(t, r.Selected)
		}
	})

	t.Run("is a pure toggle, not reconciled with per-row state", func(t *testing.T) {
		e := loaded(t, 5)
		ids := pageIDs(e)

		e.ToggleSelectPage(ids)
		e.ToggleSelect("3") // manual deselect in between
		e.ToggleSelectPage(ids)

		// Every row flipped again: 3 is the only one selected now, yet the
		// header flag reads unchecked. The flag is a UI affordance, not an
		// aggregate; this mirrors the console's observable behavior.
		view := e.PageView()
		assert.False(t, view[0].Selected)
		assert.True(t, view[2].Selected)
		assert.False(t, e.Snapshot().SelectAll)
	})
}

func TestPagination(t *testing.T) {
	t.Run("twelve records split into pages of ten and two", func(t *testing.T) {
		e := loaded(t, 12)

		snap := e.Snapshot()
		require.Equal(t, 2, snap.PageCount)

		page1 := e.PageView()
		require.Len(t, page1, 10)
		assert.Equal(t, "1", page1[0].ID)
		assert.Equal(t, "10", page1[9].ID)

		e.GoToPage(2)
		page2 := e.PageView()
		require.Len(t, page2, 2)
		assert.Equal(t, []string{"11", "12"}, idsOf(page2))
	})

	t.Run("concatenated pages cover the active set exactly once in order", func(t *testing.T) {
		e := loaded(t, 37)

		var all []string
		for n := 1; n <= e.Snapshot().PageCount; n++ {
			e.GoToPage(n)
			all = append(all, idsOf(e.PageView())...)
		}

		require.Len(t, all, 37)
		for i, id := range all {
			assert.Equal(t, fmt.Sprintf("%d", i+1), id)
		}
	})

	t.Run("out-of-range pages clamp silently", func(t *testing.T) {
		e := loaded(t, 12)

		e.GoToPage(99)
		assert.Equal(t, 2, e.Snapshot().Page)

		e.GoToPage(-5)
		assert.Equal(t, 1, e.Snapshot().Page)
	})

	t.Run("empty engine reports zero pages but stays on page 1", func(t *testing.T) {
		e := engine.New()

		snap := e.Snapshot()
		assert.Equal(t, 0, snap.PageCount)
		assert.Equal(t, 1, snap.Page)
		assert.Empty(t, e.PageView())
	})
}

// TestConsoleScenario walks the end-to-end operator flow in one piece.
func TestConsoleScenario(t *testing.T) {
	e := loaded(t, 12)

	snap := e.Snapshot()
	require.Equal(t, 2, snap.PageCount)
	require.Len(t, e.PageView(), 10)

	// Searching nothing with no prior filter changes nothing.
	before := e.PageView()
	e.Search("")
	assert.Equal(t, before, e.PageView())

	// A hopeless search surfaces the recoverable error state.
	e.Search("zzz-no-match")
	snap = e.Snapshot()
	assert.True(t, snap.SearchError)
	assert.Empty(t, e.PageView())

	// Deleting selected with nothing selected is a no-op; the flag resets.
	e.Search("")
	e.DeleteSelected()
	snap = e.Snapshot()
	assert.Equal(t, 12, snap.TotalCount)
	assert.False(t, snap.SelectAll)
	assert.False(t, snap.SystemError)
}

func idsOf(records []domain.Record) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	return ids
}
