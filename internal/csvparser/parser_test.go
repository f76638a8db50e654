package csvparser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ginjaninja78/JSON-CSV-conversion/internal/csvparser"
	"github.com/ginjaninja78/JSON-CSV-conversion/internal/types"
)

// fields flattens a record for comparison.
func fields(r *types.Record) []types.Field {
	if r == nil {
		return nil
	}
	return r.Fields()
}

func str(key, value string) types.Field {
	return types.Field{Key: key, Value: types.String(value)}
}

func TestDecodeKeyValueDocument(t *testing.T) {
	root := csvparser.Decode("\"a\";\"1\"\n\"b\";\"2\"\n")

	if root.Shape != types.ShapeRecord {
		t.Fatalf("Shape = %v, want ShapeRecord", root.Shape)
	}
	want := []types.Field{str("a", "1"), str("b", "2")}
	if diff := cmp.Diff(want, fields(root.Record)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeTwoColumnTableIsKeyValue(t *testing.T) {
	// Every line has two fields, so the header-looking first line is just
	// another pair.
	root := csvparser.Decode("\"a\";\"b\"\n\"1\";\"2\"\n\"3\";\"4\"\n")

	if root.Shape != types.ShapeRecord {
		t.Fatalf("Shape = %v, want ShapeRecord", root.Shape)
	}
	want := []types.Field{str("a", "b"), str("1", "2"), str("3", "4")}
	if diff := cmp.Diff(want, fields(root.Record)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeTabularDocument(t *testing.T) {
	root := csvparser.Decode("\"a\";\"b\";\"c\"\n\"1\";\"2\";\"3\"\n\"4\";\"5\";\"6\"\n")

	if root.Shape != types.ShapeRecordSet {
		t.Fatalf("Shape = %v, want ShapeRecordSet", root.Shape)
	}
	want := [][]types.Field{
		{str("a", "1"), str("b", "2"), str("c", "3")},
		{str("a", "4"), str("b", "5"), str("c", "6")},
	}
	var got [][]types.Field
	for _, r := range root.Records {
		got = append(got, fields(r))
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeShortRowsLeaveFieldsAbsent(t *testing.T) {
	root := csvparser.Decode("\"a\";\"b\";\"c\"\n\"1\"\n\"2\";\"3\";\"4\";\"5\"\n")

	if len(root.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(root.Records))
	}
	want := []types.Field{
		str("a", "1"),
		{Key: "b", Value: types.Absent()},
		{Key: "c", Value: types.Absent()},
	}
	if diff := cmp.Diff(want, fields(root.Records[0])); diff != "" {
		t.Errorf("short row mismatch (-want +got):\n%s", diff)
	}
	want = []types.Field{str("a", "2"), str("b", "3"), str("c", "4")}
	if diff := cmp.Diff(want, fields(root.Records[1])); diff != "" {
		t.Errorf("long row mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeHeaderOnly(t *testing.T) {
	root := csvparser.Decode("\"a\";\"b\";\"c\"\n")
	if root.Shape != types.ShapeRecordSet || len(root.Records) != 0 {
		t.Fatalf("got shape %v with %d records, want empty record set", root.Shape, len(root.Records))
	}
}

func TestDecodeEmptyInput(t *testing.T) {
	for _, in := range []string{"", "\n\n", "   \t\n  ", "\uFEFF"} {
		root := csvparser.Decode(in)
		if root.Shape != types.ShapeRecordSet || root.Records == nil || len(root.Records) != 0 {
			t.Errorf("Decode(%q) = %+v, want empty record set", in, root)
		}
	}
}

func TestDecodeDuplicateKeys(t *testing.T) {
	root := csvparser.Decode("\"a\";\"1\"\n\"b\";\"2\"\n\"a\";\"3\"\n")
	want := []types.Field{str("a", "3"), str("b", "2")}
	if diff := cmp.Diff(want, fields(root.Record)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeSkipsBlankLines(t *testing.T) {
	root := csvparser.Decode("\n\n\"a\";\"1\"\n\n\"b\";\"2\"\n\n")
	want := []types.Field{str("a", "1"), str("b", "2")}
	if diff := cmp.Diff(want, fields(root.Record)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{`"a";"b"`, []string{"a", "b"}},
		{`a;b;c`, []string{"a", "b", "c"}},
		{`"he said ""hi""";x`, []string{`he said "hi"`, "x"}},
		{`"a;b";c`, []string{"a;b", "c"}},
		{`"";""`, []string{"", ""}},
		{`a;;b`, []string{"a", "b"}},
		{` a ; b `, []string{" a ", " b "}},
		// Unterminated quote: the bare-run alternative swallows it.
		{`"abc;d`, []string{"abc", "d"}},
		// A dangling doubled quote is split into a quoted token and a lone quote.
		{`"a""`, []string{"a", ""}},
		{`;`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := csvparser.ParseLine(tt.line)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseLine(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestDecodeKeepsCarriageReturns(t *testing.T) {
	// Lines are not trimmed individually, so CRLF input yields a third
	// "\r" field on every line but the last and the document is tabular.
	root := csvparser.Decode("\"a\";\"1\"\r\n\"b\";\"2\"\r\n")
	if root.Shape != types.ShapeRecordSet {
		t.Fatalf("Shape = %v, want ShapeRecordSet", root.Shape)
	}
	want := []types.Field{str("a", "b"), str("1", "2"), str("\r", "")}
	want[2].Value = types.Absent()
	if diff := cmp.Diff(want, fields(root.Records[0])); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeSplitsEmbeddedNewlines(t *testing.T) {
	// The document is split into lines before tokenizing, so a quoted
	// newline ends the line.
	root := csvparser.Decode("\"k\";\"a\nb\"\n")
	if root.Shape != types.ShapeRecordSet || len(root.Records) != 1 {
		t.Fatalf("got shape %v with %d records", root.Shape, len(root.Records))
	}
	want := []types.Field{str("k", "b"), {Key: "a", Value: types.Absent()}}
	if diff := cmp.Diff(want, fields(root.Records[0])); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDetectShape(t *testing.T) {
	tests := []struct {
		name  string
		lines [][]string
		want  csvparser.DocumentShape
	}{
		{"no lines", nil, csvparser.KeyValueDocument},
		{"all pairs", [][]string{{"a", "1"}, {"b", "2"}}, csvparser.KeyValueDocument},
		{"one wide line", [][]string{{"a", "1"}, {"b", "2", "3"}}, csvparser.TabularDocument},
		{"single column", [][]string{{"a"}}, csvparser.TabularDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := csvparser.DetectShape(tt.lines); got != tt.want {
				t.Errorf("DetectShape() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStrictMode(t *testing.T) {
	valid := "\"a\";\"b\";\"c\"\n1;\"2\";\"3\"\n"
	if _, err := csvparser.DecodeWithOptions(valid, csvparser.Options{Strict: true}); err != nil {
		t.Fatalf("valid document rejected: %v", err)
	}

	tests := []struct {
		name    string
		text    string
		message string
	}{
		{"unterminated quote", "\"a\";\"1\"\n\"b\";\"2\n", "line 2: unterminated quote at column 5"},
		{"stray quote", "a\"b;1\n", "line 1: stray quote at column 2"},
		{"empty field", "a;;b\n", "line 1: empty field at column 2"},
		{"trailing delimiter", "a;b;\n", `line 1: unexpected ";" at column 4`},
		{"leading delimiter", ";a;b\n", `line 1: unexpected ";" at column 1`},
		{"text after quoted field", "\"a\"x;b\n", "line 1: missing delimiter at column 4"},
		{"carriage return", "\"a\";\"1\"\r\n\"b\";\"2\"\n", "line 1: missing delimiter at column 8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := csvparser.DecodeWithOptions(tt.text, csvparser.Options{Strict: true})
			if !errors.Is(err, types.ErrMalformedDelimitedText) {
				t.Fatalf("error = %v, want ErrMalformedDelimitedText", err)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("error %q does not mention %q", err, tt.message)
			}

			// The lenient decoder accepts the same input.
			if _, err := csvparser.DecodeWithOptions(tt.text, csvparser.Options{}); err != nil {
				t.Errorf("lenient decode failed: %v", err)
			}
		})
	}
}
