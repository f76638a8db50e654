// =============================================================================
// JSON/CSV Converter - Delimited Text Parser (Decoder)
// =============================================================================
//
// This module parses a DelimitedDocument back into a RootValue. Like the
// writer, it is a pure function of its input.
//
// PARSING PROCESS:
//   1. Trim surrounding whitespace from the whole document
//   2. Split on "\n" and drop zero-length lines (lines are not trimmed)
//   3. Tokenize each line into fields
//   4. Decide the document shape:
//        - every line has exactly 2 fields -> key-value document -> Record
//        - otherwise                      -> tabular document  -> RecordSet
//
// TOKENIZER:
//   A field is either a quoted run ("..." with "" as an escaped quote) or a
//   run of one or more characters other than the delimiter. Tokens are taken
//   left to right without overlap. Quoted fields lose one leading and one
//   trailing quote and have "" collapsed to ".
//
// LENIENCY:
//   Malformed quoting is not reported by default. The tokenizer simply stops
//   matching where the quotes stop making sense, which can leave a line with
//   fewer fields than it appears to have. Options.Strict turns these cases
//   into ErrMalformedDelimitedText.
//
// =============================================================================

package csvparser

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/ginjaninja78/JSON-CSV-conversion/internal/types"
)

// fieldPattern matches one field token. Go's regexp uses leftmost-first
// alternation, so a quoted run is preferred over a bare run at the same
// position.
var fieldPattern = regexp.MustCompile(`"(?:[^"]|"")*"|[^;]+`)

// quotedField matches a complete, well-formed quoted token.
var quotedField = regexp.MustCompile(`^"(?:[^"]|"")*"$`)

// =============================================================================
// DOCUMENT SHAPE
// =============================================================================

// DocumentShape is the structural interpretation of a parsed document.
type DocumentShape int

const (
	// TabularDocument has a header line followed by data rows.
	TabularDocument DocumentShape = iota

	// KeyValueDocument has exactly two fields on every line.
	KeyValueDocument
)

// String returns a readable name for the shape.
func (s DocumentShape) String() string {
	if s == KeyValueDocument {
		return "key-value"
	}
	return "tabular"
}

// DetectShape decides how parsed lines are interpreted. It is total: any
// input, including no lines at all, yields one of the two shapes.
func DetectShape(lines [][]string) DocumentShape {
	for _, fields := range lines {
		if len(fields) != 2 {
			return TabularDocument
		}
	}
	return KeyValueDocument
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Options controls decoding.
type Options struct {
	// Strict reports malformed lines instead of silently truncating them.
	// TODO: decide with downstream consumers whether strict becomes the
	// default once existing exports have been checked against it.
	Strict bool
}

// Decode parses text with the default, lenient options.
func Decode(text string) types.RootValue {
	root, _ := DecodeWithOptions(text, Options{})
	return root
}

// DecodeWithOptions parses text into a RootValue.
//
// RETURNS:
//   - A single Record for a key-value document.
//   - A RecordSet for a tabular document, or an empty RecordSet when the
//     document holds no lines.
//   - An error only in strict mode.
func DecodeWithOptions(text string, opts Options) (types.RootValue, error) {
	lines := SplitLines(text)
	if len(lines) == 0 {
		return types.Set(types.RecordSet{}), nil
	}

	parsed := make([][]string, len(lines))
	for i, line := range lines {
		if opts.Strict {
			if err := checkLine(line); err != nil {
				return types.RootValue{}, fmt.Errorf("%w: line %d: %v", types.ErrMalformedDelimitedText, i+1, err)
			}
		}
		parsed[i] = ParseLine(line)
	}

	if DetectShape(parsed) == KeyValueDocument {
		return types.SingleRecord(buildRecord(parsed)), nil
	}
	return types.Set(buildRecordSet(parsed)), nil
}

// SplitLines trims the document and returns its non-empty lines. Individual
// lines keep their own whitespace, including a trailing "\r".
func SplitLines(text string) []string {
	text = strings.TrimFunc(text, isDocumentSpace)
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if len(line) > 0 {
			lines = append(lines, line)
		}
	}
	return lines
}

// isDocumentSpace matches the characters stripped from both ends of the
// document: Unicode white space and the byte order mark.
func isDocumentSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// ParseLine tokenizes a single line into unescaped field values.
func ParseLine(line string) []string {
	tokens := fieldPattern.FindAllString(line, -1)
	fields := make([]string, len(tokens))
	for i, tok := range tokens {
		fields[i] = unquote(tok)
	}
	return fields
}

// unquote strips one leading and one trailing quote, when present, then
// collapses doubled quotes.
func unquote(tok string) string {
	tok = strings.TrimPrefix(tok, `"`)
	tok = strings.TrimSuffix(tok, `"`)
	return strings.ReplaceAll(tok, `""`, `"`)
}

// buildRecord pairs up (key, value) lines. Duplicate keys keep their first
// position and take the last value.
func buildRecord(lines [][]string) *types.Record {
	record := types.NewRecord()
	for _, fields := range lines {
		record.Set(fields[0], types.String(fields[1]))
	}
	return record
}

// buildRecordSet uses the first line as header and every other line as a
// data row. Rows shorter than the header leave the remaining keys Absent;
// extra row fields are ignored.
func buildRecordSet(lines [][]string) types.RecordSet {
	header := lines[0]
	records := make(types.RecordSet, 0, len(lines)-1)
	for _, row := range lines[1:] {
		record := types.NewRecord()
		for i, key := range header {
			if i < len(row) {
				record.Set(key, types.String(row[i]))
			} else {
				record.Set(key, types.Absent())
			}
		}
		records = append(records, record)
	}
	return records
}

// =============================================================================
// STRICT MODE
// =============================================================================

// checkLine verifies that the tokens of line cover it exactly: no bytes
// before the first token or after the last, a single delimiter between
// tokens, and no quote characters in bare tokens.
func checkLine(line string) error {
	spans := fieldPattern.FindAllStringIndex(line, -1)
	if len(spans) == 0 {
		return fmt.Errorf("no fields")
	}

	prev := 0
	for i, span := range spans {
		gap := line[prev:span[0]]
		switch {
		case i == 0 && gap != "":
			return fmt.Errorf("unexpected %q at column %d", gap, prev+1)
		case i > 0 && gap != ";":
			if gap == "" {
				return fmt.Errorf("missing delimiter at column %d", span[0]+1)
			}
			return fmt.Errorf("empty field at column %d", prev+1)
		}

		tok := line[span[0]:span[1]]
		if strings.HasPrefix(tok, `"`) && !quotedField.MatchString(tok) {
			return fmt.Errorf("unterminated quote at column %d", span[0]+1)
		}
		if !strings.HasPrefix(tok, `"`) && strings.Contains(tok, `"`) {
			return fmt.Errorf("stray quote at column %d", span[0]+strings.Index(tok, `"`)+1)
		}
		prev = span[1]
	}

	if rest := line[prev:]; rest != "" {
		return fmt.Errorf("unexpected %q at column %d", rest, prev+1)
	}
	return nil
}
