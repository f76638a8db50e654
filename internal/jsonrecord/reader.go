// =============================================================================
// JSON/CSV Converter - JSON Record Reader
// =============================================================================
//
// This module reads JSON source text into a RootValue while keeping object
// keys in document order. encoding/json's map decoding would lose that order,
// so objects are walked with the token API instead.
//
// MAPPING:
//   object            -> single Record
//   array             -> RecordSet (non-object elements become empty records)
//   string/number/... -> ScalarRoot, rejected later by the encoder
//
// FIELD VALUES:
//   string, number, true/false and null map to the matching Value kind.
//   Numbers are rendered the way JavaScript's String(number) renders them,
//   so 1.0 becomes "1" and 1e21 becomes "1e+21". Nested objects and arrays
//   are not supported as field values; they are carried as compact JSON text.
//
// =============================================================================

package jsonrecord

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ginjaninja78/JSON-CSV-conversion/internal/types"
)

// Parse reads JSON text into a RootValue.
//
// RETURNS:
//   - The root value. A scalar root is returned as types.ShapeInvalid
//     without an error; rejecting it is the encoder's job.
//   - An error wrapping types.ErrMalformedStructuredText on any syntax error
//     or trailing data.
func Parse(data []byte) (types.RootValue, error) {
	dec := newDecoder(data)

	tok, err := dec.Token()
	if err != nil {
		return types.RootValue{}, malformed(err)
	}

	var root types.RootValue
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			record, err := readObject(dec)
			if err != nil {
				return types.RootValue{}, malformed(err)
			}
			root = types.SingleRecord(record)
		case '[':
			records, err := readArray(dec)
			if err != nil {
				return types.RootValue{}, malformed(err)
			}
			root = types.Set(records)
		default:
			return types.RootValue{}, malformed(fmt.Errorf("unexpected %q", rune(t)))
		}
	default:
		v, err := scalarValue(t)
		if err != nil {
			return types.RootValue{}, malformed(err)
		}
		root = types.ScalarRoot(v)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return types.RootValue{}, malformed(err)
	}

	return root, nil
}

func newDecoder(data []byte) *json.Decoder {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec
}

func malformed(err error) error {
	return fmt.Errorf("%w: %v", types.ErrMalformedStructuredText, err)
}

// readObject reads the members of an object whose opening brace has already
// been consumed, including the closing brace.
func readObject(dec *json.Decoder) (*types.Record, error) {
	record := types.NewRecord()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %T, not a string", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		v, err := rawValue(raw)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		record.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return record, nil
}

// readArray reads the elements of an array whose opening bracket has already
// been consumed, including the closing bracket.
func readArray(dec *json.Decoder) (types.RecordSet, error) {
	records := types.RecordSet{}
	for dec.More() {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}

		if firstByte(raw) != '{' {
			records = append(records, types.NewRecord())
			continue
		}

		inner := newDecoder(raw)
		if _, err := inner.Token(); err != nil {
			return nil, err
		}
		record, err := readObject(inner)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return records, nil
}

// rawValue converts a member value. Nested containers are compacted to text.
func rawValue(raw json.RawMessage) (types.Value, error) {
	switch firstByte(raw) {
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return types.Value{}, err
		}
		return types.String(buf.String()), nil
	}

	tok, err := newDecoder(raw).Token()
	if err != nil {
		return types.Value{}, err
	}
	return scalarValue(tok)
}

func scalarValue(tok json.Token) (types.Value, error) {
	switch t := tok.(type) {
	case nil:
		return types.Null(), nil
	case bool:
		return types.Bool(t), nil
	case string:
		return types.String(t), nil
	case json.Number:
		return types.Number(FormatNumber(t)), nil
	default:
		return types.Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

func firstByte(raw []byte) byte {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

// =============================================================================
// NUMBER FORMATTING
// =============================================================================

// FormatNumber renders a JSON number literal the way JavaScript converts a
// double to a string: plain decimal notation for magnitudes in [1e-6, 1e21),
// exponent notation otherwise, shortest round-tripping digits in both cases.
func FormatNumber(n json.Number) string {
	// Out-of-range literals come back as ±Inf or ±0 together with
	// ErrRange, which is what JavaScript produces for them as well.
	f, _ := strconv.ParseFloat(string(n), 64)
	return formatFloat(f)
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}

	// d.ddddde±x gives the shortest digits and the decimal exponent.
	mantissa, expText, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	digits := strings.Replace(mantissa, ".", "", 1)
	exp, _ := strconv.Atoi(expText)
	k := len(digits)
	n := exp + 1

	var out string
	switch {
	case k <= n && n <= 21:
		out = digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		out = digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		out = "0." + strings.Repeat("0", -n) + digits
	default:
		e := n - 1
		expSign := "+"
		if e < 0 {
			expSign = "-"
			e = -e
		}
		out = digits[:1]
		if k > 1 {
			out += "." + digits[1:]
		}
		out += "e" + expSign + strconv.Itoa(e)
	}
	return sign + out
}
