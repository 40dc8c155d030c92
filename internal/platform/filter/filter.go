// Package filter builds case-insensitive substring predicates for list
// endpoints. A Set renders to a SQL fragment for the store and can also be
// evaluated in memory against a record's text fields; both forms agree.
package filter

import (
	"fmt"
	"strings"
)

// Condition requires Field to contain Value, ignoring case.
type Condition struct {
	Field string
	Value string
}

// Set is a conjunction of conditions. The zero value matches everything.
type Set struct {
	conds []Condition
}

// Contains adds a condition when value is non-nil. A nil value means the
// parameter was not supplied and the field is left unconstrained.
func (s *Set) Contains(field string, value *string) *Set {
	if value == nil {
		return s
	}
	s.conds = append(s.conds, Condition{Field: field, Value: *value})
	return s
}

// SQL renders the set as a WHERE fragment with positional placeholders
// starting at $firstArg. Field names are interpolated verbatim and must come
// from code, never from request input. strpos is used rather than LIKE so
// '%' and '_' in values are matched literally.
func (s *Set) SQL(firstArg int) (string, []any) {
	if len(s.conds) == 0 {
		return "", nil
	}

	clauses := make([]string, 0, len(s.conds))
	args := make([]any, 0, len(s.conds))
	for i, c := range s.conds {
		clauses = append(clauses, fmt.Sprintf("strpos(lower(%s), lower($%d)) > 0", c.Field, firstArg+i))
		args = append(args, c.Value)
	}
	return strings.Join(clauses, " AND "), args
}

// Match evaluates the set in memory. fields maps each condition's Field to
// the record's value; a missing field reads as the empty string.
func (s *Set) Match(fields map[string]string) bool {
	for _, c := range s.conds {
		if !ContainsFold(fields[c.Field], c.Value) {
			return false
		}
	}
	return true
}

// ContainsFold reports whether sub occurs in str after lowercasing both.
func ContainsFold(str, sub string) bool {
	return strings.Contains(strings.ToLower(str), strings.ToLower(sub))
}

// Param returns a pointer to v, or nil when v is empty. Query layers use it
// so an empty parameter means "omit".
func Param(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
