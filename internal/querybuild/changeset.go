package querybuild

// FieldMap maps the logical field names callers use to the column names
// they are stored under. Fields without an entry resolve to themselves,
// so only names that actually differ (camelCase API fields over
// snake_case columns, usually) need an entry.
//
// Each resource's data-access code owns one FieldMap as a package-level
// value and treats it as immutable.
type FieldMap map[string]string

// Column resolves a logical field name to its storage column.
func (m FieldMap) Column(field string) string {
	if col, ok := m[field]; ok {
		return col
	}
	return field
}

// ChangeSet is an ordered collection of field -> new value assignments
// driving a partial update. Order is insertion order: the first Set of a
// field fixes its position, a later Set of the same field replaces the
// value in place. That keeps the emitted clause deterministic without
// depending on map iteration.
//
// A ChangeSet is built per call and read once by SetClause; it is not
// safe for concurrent mutation.
type ChangeSet struct {
	fields []string
	values []any
}

// NewChangeSet returns an empty ChangeSet.
func NewChangeSet() *ChangeSet {
	return &ChangeSet{}
}

// Set records a new value for field. nil is a meaningful value: it sets
// the column to SQL NULL. Returns the ChangeSet for chaining.
func (cs *ChangeSet) Set(field string, value any) *ChangeSet {
	for i, existing := range cs.fields {
		if existing == field {
			cs.values[i] = value
			return cs
		}
	}
	cs.fields = append(cs.fields, field)
	cs.values = append(cs.values, value)
	return cs
}

// Len reports the number of fields in the ChangeSet.
func (cs *ChangeSet) Len() int {
	if cs == nil {
		return 0
	}
	return len(cs.fields)
}
