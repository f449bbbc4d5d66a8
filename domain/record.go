package domain

// Record is a single raw row produced by a store driver. Implementations
// expose named field access and the record's identifier.
type Record interface {
	// ID returns the record's primary identifier.
	ID() any
	// Field returns the value stored under key. The second return is false
	// when the record has no such field.
	Field(key string) (any, bool)
}

// RecordSet is the result of a store fetch: one page of records plus the
// total count before offset/limit were applied.
type RecordSet struct {
	Records []Record
	Total   int64
}

// MapRecord is a Record backed by a plain map. The zero value is unusable;
// construct with NewMapRecord.
type MapRecord struct {
	id     any
	fields map[string]any
}

// NewMapRecord builds a MapRecord with the given identifier and fields.
func NewMapRecord(id any, fields map[string]any) MapRecord {
	return MapRecord{id: id, fields: fields}
}

func (r MapRecord) ID() any { return r.id }

func (r MapRecord) Field(key string) (any, bool) {
	v, ok := r.fields[key]
	return v, ok
}
