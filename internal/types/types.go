// =============================================================================
// JSON/CSV Converter - Shared Types
// =============================================================================
//
// This package contains the record model shared by the encoder, the decoder,
// the JSON reader/writer and the spreadsheet exporter. Keeping it here avoids
// import cycles between:
//   - csvwriter
//   - csvparser
//   - jsonrecord
//   - xlsxwriter
//
// ORDERING:
//   Records keep their keys in insertion order. Field order drives column
//   order on encode and must survive a decode-then-encode round trip, so a
//   plain Go map is never used on its own to hold record fields.
//
// =============================================================================

package types

import "strconv"

// =============================================================================
// SCALAR VALUES
// =============================================================================

// Kind identifies the type of a scalar Value.
type Kind int

const (
	// KindAbsent marks a field that has a key but no stored value. This is
	// what a tabular row shorter than its header produces.
	KindAbsent Kind = iota

	// KindNull is an explicit JSON null.
	KindNull

	// KindString is a text value.
	KindString

	// KindNumber is a numeric value. The text is kept already formatted.
	KindNumber

	// KindBool is true or false.
	KindBool
)

// String returns a readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a single scalar field value.
// The zero Value is Absent.
type Value struct {
	// Kind is the scalar type of the value.
	Kind Kind

	// Text is the textual form of the value.
	// It is empty for Absent and Null.
	Text string
}

// Absent returns a value with no content.
func Absent() Value { return Value{Kind: KindAbsent} }

// Null returns a JSON null value.
func Null() Value { return Value{Kind: KindNull} }

// String returns a text value.
func String(s string) Value { return Value{Kind: KindString, Text: s} }

// Number returns a numeric value. The text must already be the canonical
// rendering of the number.
func Number(text string) Value { return Value{Kind: KindNumber, Text: text} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{Kind: KindBool, Text: strconv.FormatBool(b)} }

// String is the null-coalescing text conversion used by the encoder:
// Absent and Null become the empty string, everything else its text.
func (v Value) String() string {
	if v.Kind == KindAbsent || v.Kind == KindNull {
		return ""
	}
	return v.Text
}

// =============================================================================
// RECORD
// =============================================================================

// Field is one key/value pair of a Record.
type Field struct {
	Key   string
	Value Value
}

// Record is a flat mapping from field name to scalar value with unique keys
// and significant insertion order.
type Record struct {
	fields []Field
	index  map[string]int
}

// NewRecord creates an empty Record.
func NewRecord() *Record {
	return &Record{index: make(map[string]int)}
}

// RecordOf builds a Record from fields in order. Later duplicates overwrite
// earlier values.
func RecordOf(fields ...Field) *Record {
	r := NewRecord()
	for _, f := range fields {
		r.Set(f.Key, f.Value)
	}
	return r
}

// Set stores a value under key. An existing key keeps its position and has
// its value replaced.
func (r *Record) Set(key string, value Value) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if i, ok := r.index[key]; ok {
		r.fields[i].Value = value
		return
	}
	r.index[key] = len(r.fields)
	r.fields = append(r.fields, Field{Key: key, Value: value})
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (Value, bool) {
	i, ok := r.index[key]
	if !ok {
		return Value{}, false
	}
	return r.fields[i].Value, true
}

// Has reports whether key is present, whatever its value.
func (r *Record) Has(key string) bool {
	_, ok := r.index[key]
	return ok
}

// Keys returns the keys in insertion order.
func (r *Record) Keys() []string {
	keys := make([]string, len(r.fields))
	for i, f := range r.fields {
		keys[i] = f.Key
	}
	return keys
}

// Fields returns a copy of the fields in insertion order.
func (r *Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.fields)
}

// RecordSet is an ordered sequence of independently shaped Records.
type RecordSet []*Record

// =============================================================================
// ROOT VALUE
// =============================================================================

// Shape identifies which variant a RootValue holds.
type Shape int

const (
	// ShapeInvalid is anything that is neither a record nor a record set,
	// for example a bare scalar at the root of a JSON document.
	ShapeInvalid Shape = iota

	// ShapeRecord is a single Record.
	ShapeRecord

	// ShapeRecordSet is a sequence of Records.
	ShapeRecordSet
)

// RootValue is the unit exchanged with the encoder and the decoder.
type RootValue struct {
	// Shape selects the populated variant.
	Shape Shape

	// Record is set when Shape is ShapeRecord.
	Record *Record

	// Records is set when Shape is ShapeRecordSet.
	Records RecordSet

	// Scalar holds the offending value when Shape is ShapeInvalid.
	Scalar Value
}

// SingleRecord wraps a Record.
func SingleRecord(r *Record) RootValue {
	return RootValue{Shape: ShapeRecord, Record: r}
}

// Set wraps a RecordSet. A nil set is normalized to an empty one.
func Set(records RecordSet) RootValue {
	if records == nil {
		records = RecordSet{}
	}
	return RootValue{Shape: ShapeRecordSet, Records: records}
}

// ScalarRoot wraps a value that cannot be a root.
func ScalarRoot(v Value) RootValue {
	return RootValue{Shape: ShapeInvalid, Scalar: v}
}

// Count returns the number of records held by the root.
func (rv RootValue) Count() int {
	switch rv.Shape {
	case ShapeRecord:
		return 1
	case ShapeRecordSet:
		return len(rv.Records)
	default:
		return 0
	}
}
