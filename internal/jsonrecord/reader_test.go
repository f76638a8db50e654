package jsonrecord_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ginjaninja78/JSON-CSV-conversion/internal/jsonrecord"
	"github.com/ginjaninja78/JSON-CSV-conversion/internal/types"
)

func TestParseObjectKeepsKeyOrder(t *testing.T) {
	root, err := jsonrecord.Parse([]byte(`{"z": 1, "a": "two", "m": true, "n": null}`))
	if err != nil {
		t.Fatal(err)
	}
	if root.Shape != types.ShapeRecord {
		t.Fatalf("Shape = %v, want ShapeRecord", root.Shape)
	}

	want := []types.Field{
		{Key: "z", Value: types.Number("1")},
		{Key: "a", Value: types.String("two")},
		{Key: "m", Value: types.Bool(true)},
		{Key: "n", Value: types.Null()},
	}
	if diff := cmp.Diff(want, root.Record.Fields()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDuplicateKeys(t *testing.T) {
	root, err := jsonrecord.Parse([]byte(`{"a": 1, "b": 2, "a": 3}`))
	if err != nil {
		t.Fatal(err)
	}
	want := []types.Field{
		{Key: "a", Value: types.Number("3")},
		{Key: "b", Value: types.Number("2")},
	}
	if diff := cmp.Diff(want, root.Record.Fields()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseArray(t *testing.T) {
	root, err := jsonrecord.Parse([]byte(`[{"a": 1, "b": 2}, 7, {"b": 3, "c": 4}, null]`))
	if err != nil {
		t.Fatal(err)
	}
	if root.Shape != types.ShapeRecordSet {
		t.Fatalf("Shape = %v, want ShapeRecordSet", root.Shape)
	}

	var got [][]string
	for _, r := range root.Records {
		got = append(got, r.Keys())
	}
	want := [][]string{{"a", "b"}, {}, {"b", "c"}, {}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmptyArray(t *testing.T) {
	root, err := jsonrecord.Parse([]byte(`[]`))
	if err != nil {
		t.Fatal(err)
	}
	if root.Shape != types.ShapeRecordSet || len(root.Records) != 0 {
		t.Errorf("got %+v, want empty record set", root)
	}
}

func TestParseScalarRoot(t *testing.T) {
	tests := map[string]types.Value{
		`42`:     types.Number("42"),
		`"text"`: types.String("text"),
		`null`:   types.Null(),
		`false`:  types.Bool(false),
	}
	for in, want := range tests {
		root, err := jsonrecord.Parse([]byte(in))
		if err != nil {
			t.Fatalf("Parse(%s) error = %v", in, err)
		}
		if root.Shape != types.ShapeInvalid {
			t.Errorf("Parse(%s) shape = %v, want ShapeInvalid", in, root.Shape)
		}
		if root.Scalar != want {
			t.Errorf("Parse(%s) scalar = %+v, want %+v", in, root.Scalar, want)
		}
	}
}

func TestParseNestedValuesBecomeJSONText(t *testing.T) {
	root, err := jsonrecord.Parse([]byte(`{"tags": [1, 2], "meta": {"k": "v"}}`))
	if err != nil {
		t.Fatal(err)
	}
	tags, _ := root.Record.Get("tags")
	meta, _ := root.Record.Get("meta")
	if tags != types.String("[1,2]") || meta != types.String(`{"k":"v"}`) {
		t.Errorf("tags = %+v, meta = %+v", tags, meta)
	}
}

func TestParseMalformed(t *testing.T) {
	inputs := []string{
		``,
		`{`,
		`{"a": }`,
		`{"a": 1} trailing`,
		`[1, 2`,
		`{'a': 1}`,
		`{} {}`,
	}
	for _, in := range inputs {
		_, err := jsonrecord.Parse([]byte(in))
		if !errors.Is(err, types.ErrMalformedStructuredText) {
			t.Errorf("Parse(%q) error = %v, want ErrMalformedStructuredText", in, err)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"-0", "0"},
		{"1", "1"},
		{"1.0", "1"},
		{"1.50", "1.5"},
		{"-12.25", "-12.25"},
		{"123456789", "123456789"},
		{"1e3", "1000"},
		{"1e20", "100000000000000000000"},
		{"1e21", "1e+21"},
		{"1.5e21", "1.5e+21"},
		{"0.000001", "0.000001"},
		{"0.0000001", "1e-7"},
		{"1.25e-8", "1.25e-8"},
		{"0.1", "0.1"},
		{"9007199254740993", "9007199254740992"},
		{"1e400", "Infinity"},
		{"-1e400", "-Infinity"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := jsonrecord.FormatNumber(json.Number(tt.in)); got != tt.want {
				t.Errorf("FormatNumber(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
