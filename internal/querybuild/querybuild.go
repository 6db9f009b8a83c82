// Package querybuild builds parameterized SQL fragments from sparse,
// caller-supplied input: the SET clause of a partial UPDATE and the WHERE
// clause of a filtered search.
//
// Both builders emit positional placeholders ($1, $2, ...) and return the
// matching parameter list; caller values never appear in the generated
// text. Placeholder numbering is contiguous and starts at a caller-chosen
// index so callers can append trailing parameters (such as a primary-key
// condition) without renumbering.
//
// The builders are pure functions of their arguments. They hold no state
// between calls and are safe for concurrent use.
package querybuild

import (
	"fmt"
	"strings"
)

// Op is the comparison a filter rule applies to its column.
type Op int

const (
	// OpEqual matches rows where the column equals the supplied value.
	OpEqual Op = iota

	// OpAtLeast matches rows where the column is >= the supplied value.
	OpAtLeast

	// OpAtMost matches rows where the column is <= the supplied value.
	OpAtMost

	// OpContains matches rows where the column contains the supplied
	// value as a case-insensitive substring (ILIKE with the value
	// wrapped in wildcards).
	OpContains

	// OpPositive is a boolean flag with no parameter of its own: when the
	// supplied value is true it emits the literal predicate "<column> > 0".
	// A false or absent flag applies no constraint.
	OpPositive
)

func (op Op) token() string {
	switch op {
	case OpEqual:
		return "="
	case OpAtLeast:
		return ">="
	case OpAtMost:
		return "<="
	case OpContains:
		return "ILIKE"
	}
	return ""
}

// Rule declares one filter a resource supports: the name callers use, the
// column it applies to, and the comparison operator.
//
// A rule table is a []Rule in a fixed order; WhereClause walks the table,
// not the input map, so the generated SQL is identical for identical
// filters no matter how the map was populated. An OpAtLeast rule and an
// OpAtMost rule naming the same column form a range pair and are checked
// for an impossible min > max before any text is built.
type Rule struct {
	Name   string
	Column string
	Op     Op
}

// SetClause turns a ChangeSet into the body of an UPDATE ... SET clause
// plus its parameter list.
//
// Each entry becomes a "<column>"=$<i> token, comma-joined in the
// ChangeSet's insertion order, with indices counting up from start.
// Column names resolve through columns; fields without a mapping keep
// their own name. Values pass through untouched, nil included (an
// explicit SQL NULL).
//
// An empty ChangeSet returns a ValidationError before any text is
// produced: an UPDATE with no assignments is not a statement worth
// sending to the database.
func SetClause(changes *ChangeSet, columns FieldMap, start int) (string, []any, error) {
	if changes.Len() == 0 {
		return "", nil, errorf("no fields to update")
	}

	var b strings.Builder
	params := make([]any, 0, changes.Len())

	for i, field := range changes.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q=$%d", columns.Column(field), start+i)
		params = append(params, changes.values[i])
	}

	return b.String(), params, nil
}

// WhereClause turns a sparse filter map into an AND-joined predicate list
// plus its parameter list.
//
// Rules are applied in table order; names absent from filters are
// skipped. If no declared filter is present the clause is empty and nil
// parameters are returned, meaning "match everything", not a predicate
// that matches no rows. Parameterized predicates take the form
// <column> <op> $<n> with n counting up from start; OpContains wraps the
// value in % wildcards before appending it; OpPositive contributes a
// parameterless literal.
//
// When a range pair carries both bounds and the minimum exceeds the
// maximum, WhereClause fails with a ValidationError before building any
// text. Executing such a filter would succeed and silently match zero
// rows, hiding the caller's mistake.
func WhereClause(filters map[string]any, rules []Rule, start int) (string, []any, error) {
	if err := checkRangePairs(filters, rules); err != nil {
		return "", nil, err
	}

	var preds []string
	var params []any
	next := start

	for _, r := range rules {
		value, ok := filters[r.Name]
		if !ok {
			continue
		}

		switch r.Op {
		case OpPositive:
			if flag, _ := value.(bool); flag {
				preds = append(preds, r.Column+" > 0")
			}
		case OpContains:
			preds = append(preds, fmt.Sprintf("%s ILIKE $%d", r.Column, next))
			params = append(params, fmt.Sprintf("%%%v%%", value))
			next++
		default:
			preds = append(preds, fmt.Sprintf("%s %s $%d", r.Column, r.Op.token(), next))
			params = append(params, value)
			next++
		}
	}

	if len(preds) == 0 {
		return "", nil, nil
	}
	return strings.Join(preds, " AND "), params, nil
}

// checkRangePairs rejects filters where a range pair's lower bound
// exceeds its upper bound. Pairs are discovered from the rule table
// itself: an OpAtLeast and an OpAtMost rule over the same column.
func checkRangePairs(filters map[string]any, rules []Rule) error {
	for _, lo := range rules {
		if lo.Op != OpAtLeast {
			continue
		}
		for _, hi := range rules {
			if hi.Op != OpAtMost || hi.Column != lo.Column {
				continue
			}

			loValue, loOK := filters[lo.Name]
			hiValue, hiOK := filters[hi.Name]
			if !loOK || !hiOK {
				continue
			}

			min, minOK := asFloat(loValue)
			max, maxOK := asFloat(hiValue)
			if minOK && maxOK && min > max {
				return errorf("%s cannot be greater than %s", lo.Name, hi.Name)
			}
		}
	}
	return nil
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
