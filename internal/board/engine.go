// Package board filters and orders the task collection for display.
package board

import (
	"cmp"
	"slices"

	"github.com/agalitsyn/taskdash/internal/model"
)

// Apply returns the tasks passing sel, ordered by cfg. Ties keep their input
// order in both directions. The input slice is not modified.
func Apply(tasks []model.Task, sel model.Selection, cfg model.SortConfig) []model.Task {
	visible := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if sel.Matches(t) {
			visible = append(visible, t)
		}
	}

	compare := comparator(cfg.Field)
	slices.SortStableFunc(visible, func(a, b model.Task) int {
		if c := compareMissing(cfg.Field, a, b); c != 0 {
			return c
		}
		if cfg.Direction == model.SortDesc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return visible
}

func comparator(field model.SortField) func(a, b model.Task) int {
	switch field {
	case model.SortByDueDate:
		return func(a, b model.Task) int { return a.DueDate.Compare(b.DueDate) }
	case model.SortByStatus:
		return func(a, b model.Task) int { return cmp.Compare(a.Status, b.Status) }
	case model.SortByProgress:
		return func(a, b model.Task) int { return cmp.Compare(a.Progress, b.Progress) }
	default:
		return func(a, b model.Task) int { return cmp.Compare(a.Priority.Rank(), b.Priority.Rank()) }
	}
}

// compareMissing keeps undated tasks after dated ones whatever the direction.
func compareMissing(field model.SortField, a, b model.Task) int {
	if field != model.SortByDueDate {
		return 0
	}
	switch {
	case a.DueDate.IsZero() == b.DueDate.IsZero():
		return 0
	case a.DueDate.IsZero():
		return 1
	default:
		return -1
	}
}

// Facets are the distinct values offered as filter options.
type Facets struct {
	Statuses   []string
	Categories []string
	Projects   []string
	Tags       []string
	Priorities []string
}

// Values returns the facet list for d.
func (f Facets) Values(d model.Dimension) []string {
	switch d {
	case model.DimensionStatus:
		return f.Statuses
	case model.DimensionCategory:
		return f.Categories
	case model.DimensionProject:
		return f.Projects
	case model.DimensionTag:
		return f.Tags
	case model.DimensionPriority:
		return f.Priorities
	default:
		return nil
	}
}

// FacetsOf collects facets from the full collection so options never shrink
// while filters are applied. Values keep their first-appearance order.
func FacetsOf(tasks []model.Task) Facets {
	var (
		f    Facets
		seen [5]map[string]struct{}
	)
	for i := range seen {
		seen[i] = make(map[string]struct{})
	}
	add := func(dst *[]string, set map[string]struct{}, v string) {
		if v == "" {
			return
		}
		if _, ok := set[v]; ok {
			return
		}
		set[v] = struct{}{}
		*dst = append(*dst, v)
	}

	for _, t := range tasks {
		add(&f.Statuses, seen[model.DimensionStatus], string(t.Status))
		add(&f.Categories, seen[model.DimensionCategory], t.Category)
		add(&f.Projects, seen[model.DimensionProject], t.Project)
		for _, tag := range t.Tags {
			add(&f.Tags, seen[model.DimensionTag], tag)
		}
	}
	for _, p := range model.Priorities {
		f.Priorities = append(f.Priorities, string(p))
	}
	return f
}
