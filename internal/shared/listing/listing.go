// Package listing normalizes list query parameters against per-resource allow-lists.
package listing

import "strings"

const DefaultColumn = "created_at"

type Direction string

const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

// Sort is an already-validated ordering. Column is always a member of the
// allow-list it was built from, so it is safe to splice into ORDER BY.
type Sort struct {
	Column    string
	Direction Direction
}

func (s Sort) Desc() bool {
	return s.Direction == Descending
}

func (s Sort) Clause(tableAlias string) string {
	column := s.Column
	if tableAlias != "" {
		column = tableAlias + "." + column
	}
	return column + " " + string(s.Direction)
}

// NewSort returns the requested ordering when both column and direction are
// allowed and falls back to created_at DESC otherwise. It never fails.
func NewSort(column string, direction string, allowed []string) Sort {
	fallback := Sort{Column: DefaultColumn, Direction: Descending}

	column = strings.TrimSpace(column)
	if column == "" {
		column = DefaultColumn
	}
	dir := Direction(strings.ToUpper(strings.TrimSpace(direction)))
	if dir == "" {
		dir = Descending
	}
	if dir != Ascending && dir != Descending {
		return fallback
	}
	for _, candidate := range allowed {
		if candidate == column {
			return Sort{Column: column, Direction: dir}
		}
	}
	return fallback
}

// Contains reports whether haystack contains needle, ignoring case. An empty
// needle matches everything.
func Contains(haystack string, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// LikePattern builds an ILIKE pattern with SQL wildcards in the input escaped.
func LikePattern(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(strings.TrimSpace(value)) + "%"
}
