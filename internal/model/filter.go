package model

import (
	"fmt"
	"strings"
)

// Dimension is one of the five filterable task attributes.
type Dimension int

const (
	DimensionStatus Dimension = iota
	DimensionCategory
	DimensionProject
	DimensionTag
	DimensionPriority
)

const numDimensions = 5

var Dimensions = []Dimension{DimensionStatus, DimensionCategory, DimensionProject, DimensionTag, DimensionPriority}

func (d Dimension) String() string {
	switch d {
	case DimensionStatus:
		return "status"
	case DimensionCategory:
		return "category"
	case DimensionProject:
		return "project"
	case DimensionTag:
		return "tag"
	case DimensionPriority:
		return "priority"
	default:
		return fmt.Sprintf("dimension(%d)", int(d))
	}
}

// ValueSet is a set of allowed values for a single dimension.
type ValueSet map[string]struct{}

func NewValueSet(values ...string) ValueSet {
	s := make(ValueSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s ValueSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Selection holds the active filter values. An empty set for a dimension
// means no restriction on it.
type Selection struct {
	sets [numDimensions]ValueSet
}

func (s Selection) Values(d Dimension) ValueSet {
	return s.sets[d]
}

// Set replaces the allowed values for d.
func (s *Selection) Set(d Dimension, values ...string) {
	if len(values) == 0 {
		s.sets[d] = nil
		return
	}
	s.sets[d] = NewValueSet(values...)
}

// Toggle adds v to the allowed values of d or removes it if present.
func (s *Selection) Toggle(d Dimension, v string) {
	set := s.sets[d]
	if set.Has(v) {
		delete(set, v)
		if len(set) == 0 {
			s.sets[d] = nil
		}
		return
	}
	if set == nil {
		set = make(ValueSet)
		s.sets[d] = set
	}
	set[v] = struct{}{}
}

func (s Selection) IsEmpty() bool {
	for _, set := range s.sets {
		if len(set) > 0 {
			return false
		}
	}
	return true
}

// Clone returns a selection that shares no sets with s.
func (s Selection) Clone() Selection {
	var c Selection
	for i, set := range s.sets {
		if len(set) == 0 {
			continue
		}
		c.sets[i] = make(ValueSet, len(set))
		for v := range set {
			c.sets[i][v] = struct{}{}
		}
	}
	return c
}

// Matches reports whether t passes every non-empty dimension.
func (s Selection) Matches(t Task) bool {
	for _, d := range Dimensions {
		set := s.sets[d]
		if len(set) == 0 {
			continue
		}
		if d == DimensionTag {
			if !matchesAnyTag(set, t.Tags) {
				return false
			}
			continue
		}
		if !set.Has(fieldValue(t, d)) {
			return false
		}
	}
	return true
}

func matchesAnyTag(set ValueSet, tags []string) bool {
	for _, tag := range tags {
		if set.Has(tag) {
			return true
		}
	}
	return false
}

func fieldValue(t Task, d Dimension) string {
	switch d {
	case DimensionStatus:
		return string(t.Status)
	case DimensionCategory:
		return t.Category
	case DimensionProject:
		return t.Project
	case DimensionPriority:
		return string(t.Priority)
	default:
		return ""
	}
}

type SortField string

const (
	SortByPriority SortField = "priority"
	SortByDueDate  SortField = "dueDate"
	SortByStatus   SortField = "status"
	SortByProgress SortField = "progress"
)

var SortFields = []SortField{SortByPriority, SortByDueDate, SortByStatus, SortByProgress}

func ParseSortField(s string) (SortField, error) {
	for _, f := range SortFields {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown sort field %q", s)
}

// Next cycles through SortFields.
func (f SortField) Next() SortField {
	for i, v := range SortFields {
		if v == f {
			return SortFields[(i+1)%len(SortFields)]
		}
	}
	return SortFields[0]
}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(s) {
	case "asc":
		return SortAsc, nil
	case "desc":
		return SortDesc, nil
	default:
		return "", fmt.Errorf("unknown sort direction %q", s)
	}
}

type SortConfig struct {
	Field     SortField
	Direction SortDirection
}

func DefaultSortConfig() SortConfig {
	return SortConfig{Field: SortByPriority, Direction: SortDesc}
}

func (c SortConfig) Toggle() SortConfig {
	if c.Direction == SortAsc {
		c.Direction = SortDesc
	} else {
		c.Direction = SortAsc
	}
	return c
}

func (c SortConfig) Arrow() string {
	if c.Direction == SortAsc {
		return "↑"
	}
	return "↓"
}
