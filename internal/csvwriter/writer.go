// =============================================================================
// JSON/CSV Converter - Delimited Text Writer (Encoder)
// =============================================================================
//
// This module turns a RootValue into a DelimitedDocument. It is a pure
// function of its input and is safe to call from multiple goroutines.
//
// OUTPUT LAYOUT:
//   Single record -> one line per key, in insertion order:
//
//     "name";"Ada"
//     "age";"36"
//
//   Record set -> a header line holding the union of all keys in first-seen
//   order, then one line per record:
//
//     "a";"b";"c"
//     "1";"2";""
//     "";"3";"4"
//
// QUOTING:
//   Every field is wrapped in double quotes and internal quotes are doubled.
//   This is QuoteAlways and it is the default; existing output depends on it
//   byte for byte. QuoteMinimal exists for callers that ask for it through
//   configuration.
//
// =============================================================================

package csvwriter

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/JSON-CSV-conversion/internal/types"
)

// =============================================================================
// FORMAT CONSTANTS
// =============================================================================

const (
	// Delimiter separates fields on a line.
	Delimiter = ";"

	// Quote wraps fields. A literal quote inside a field is written twice.
	Quote = `"`

	// LineTerminator ends every line, including the last one.
	LineTerminator = "\n"
)

// QuotePolicy decides which fields get wrapped in quotes.
type QuotePolicy int

const (
	// QuoteAlways quotes every field unconditionally.
	QuoteAlways QuotePolicy = iota

	// QuoteMinimal quotes empty fields and fields containing the
	// delimiter, a quote, CR or LF. Empty fields stay quoted because the
	// decoder drops zero-length bare fields.
	QuoteMinimal
)

// ParseQuotePolicy maps a configuration string to a QuotePolicy.
func ParseQuotePolicy(s string) (QuotePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "always":
		return QuoteAlways, nil
	case "minimal":
		return QuoteMinimal, nil
	default:
		return QuoteAlways, fmt.Errorf("unknown quote policy %q (want always or minimal)", s)
	}
}

// String returns the configuration name of the policy.
func (p QuotePolicy) String() string {
	if p == QuoteMinimal {
		return "minimal"
	}
	return "always"
}

// =============================================================================
// ENCODER
// =============================================================================

// Options controls encoding.
type Options struct {
	// Quoting selects the quote policy. The zero value is QuoteAlways.
	Quoting QuotePolicy
}

// Encode converts root into delimited text using the default options.
func Encode(root types.RootValue) (string, error) {
	return EncodeWithOptions(root, Options{})
}

// EncodeWithOptions converts root into delimited text.
//
// RETURNS:
//   - The document, always ending with exactly one newline.
//   - types.ErrInvalidRootShape if root is neither a record nor a record set.
func EncodeWithOptions(root types.RootValue, opts Options) (string, error) {
	grid, err := Table(root)
	if err != nil {
		return "", err
	}

	lines := make([]string, len(grid))
	for i, row := range grid {
		quoted := make([]string, len(row))
		for j, field := range row {
			quoted[j] = quoteField(field, opts.Quoting)
		}
		lines[i] = strings.Join(quoted, Delimiter)
	}

	return strings.Join(lines, LineTerminator) + LineTerminator, nil
}

// Table returns the unquoted field grid that Encode would write.
//
// For a single record each row is a [key, value] pair. For a record set the
// first row is the header and each following row holds one record's values
// in header order, with the empty string for keys the record lacks.
func Table(root types.RootValue) ([][]string, error) {
	switch root.Shape {
	case types.ShapeRecord:
		return recordTable(root.Record), nil
	case types.ShapeRecordSet:
		return recordSetTable(root.Records), nil
	default:
		return nil, types.ErrInvalidRootShape
	}
}

func recordTable(record *types.Record) [][]string {
	if record == nil {
		return [][]string{}
	}
	grid := make([][]string, 0, record.Len())
	for _, f := range record.Fields() {
		grid = append(grid, []string{f.Key, f.Value.String()})
	}
	return grid
}

func recordSetTable(records types.RecordSet) [][]string {
	header := HeaderUnion(records)

	grid := make([][]string, 0, len(records)+1)
	grid = append(grid, header)
	for _, record := range records {
		row := make([]string, len(header))
		for i, key := range header {
			if record == nil {
				continue
			}
			// Presence, not truthiness: a present null still encodes as "".
			if v, ok := record.Get(key); ok {
				row[i] = v.String()
			}
		}
		grid = append(grid, row)
	}
	return grid
}

// HeaderUnion returns every key seen across records, in first-seen order.
func HeaderUnion(records types.RecordSet) []string {
	seen := make(map[string]struct{})
	header := []string{}
	for _, record := range records {
		if record == nil {
			continue
		}
		for _, key := range record.Keys() {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			header = append(header, key)
		}
	}
	return header
}

// =============================================================================
// QUOTING
// =============================================================================

// QuoteField wraps s in quotes and doubles internal quotes.
func QuoteField(s string) string {
	return Quote + strings.ReplaceAll(s, Quote, Quote+Quote) + Quote
}

func quoteField(s string, policy QuotePolicy) string {
	if policy == QuoteMinimal && s != "" && !strings.ContainsAny(s, Delimiter+Quote+"\r\n") {
		return s
	}
	return QuoteField(s)
}
