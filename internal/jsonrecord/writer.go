package jsonrecord

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/ginjaninja78/JSON-CSV-conversion/internal/types"
)

// Indent is the indentation unit of Marshal's output.
const Indent = "  "

// Marshal renders root as pretty-printed JSON with two-space indentation and
// no trailing newline. Absent fields are left out, like undefined properties
// are by JSON.stringify.
func Marshal(root types.RootValue) ([]byte, error) {
	var buf bytes.Buffer
	switch root.Shape {
	case types.ShapeRecord:
		writeRecord(&buf, root.Record, 0)
	case types.ShapeRecordSet:
		writeRecordSet(&buf, root.Records)
	default:
		return nil, types.ErrInvalidRootShape
	}
	return buf.Bytes(), nil
}

func writeRecordSet(buf *bytes.Buffer, records types.RecordSet) {
	if len(records) == 0 {
		buf.WriteString("[]")
		return
	}
	buf.WriteString("[\n")
	for i, record := range records {
		buf.WriteString(Indent)
		writeRecord(buf, record, 1)
		if i < len(records)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteByte(']')
}

func writeRecord(buf *bytes.Buffer, record *types.Record, depth int) {
	var fields []types.Field
	if record != nil {
		for _, f := range record.Fields() {
			if f.Value.Kind != types.KindAbsent {
				fields = append(fields, f)
			}
		}
	}
	if len(fields) == 0 {
		buf.WriteString("{}")
		return
	}

	inner := strings.Repeat(Indent, depth+1)
	buf.WriteString("{\n")
	for i, f := range fields {
		buf.WriteString(inner)
		writeString(buf, f.Key)
		buf.WriteString(": ")
		writeValue(buf, f.Value)
		if i < len(fields)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(strings.Repeat(Indent, depth))
	buf.WriteByte('}')
}

func writeValue(buf *bytes.Buffer, v types.Value) {
	switch v.Kind {
	case types.KindString:
		writeString(buf, v.Text)
	case types.KindBool:
		buf.WriteString(v.Text)
	case types.KindNumber:
		// JSON has no literal for non-finite numbers.
		switch v.Text {
		case "NaN", "Infinity", "-Infinity":
			buf.WriteString("null")
		default:
			buf.WriteString(v.Text)
		}
	default:
		buf.WriteString("null")
	}
}

// writeString writes s as a JSON string literal without HTML escaping.
func writeString(buf *bytes.Buffer, s string) {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
}
