package types

import "errors"

// Error kinds surfaced by a conversion run. Callers match them with
// errors.Is; every other error in the pipeline wraps one of these.
var (
	// ErrInvalidRootShape is returned by the encoder when the root is
	// neither a record nor a sequence of records.
	ErrInvalidRootShape = errors.New("JSON root must be an object or an array of objects")

	// ErrMalformedStructuredText is returned when JSON source text fails
	// to parse.
	ErrMalformedStructuredText = errors.New("invalid JSON")

	// ErrMalformedDelimitedText is only returned by the decoder in strict
	// mode. The default decoder never fails.
	ErrMalformedDelimitedText = errors.New("malformed delimited text")

	// ErrUnsupportedExtension is returned for sources that are neither
	// .json nor .csv.
	ErrUnsupportedExtension = errors.New("unsupported source file type, use .json or .csv")

	// ErrMissingArguments is returned when the source or target path is
	// missing.
	ErrMissingArguments = errors.New("missing arguments")

	// ErrIOFailure wraps read and write failures at the file boundary.
	ErrIOFailure = errors.New("I/O failure")
)
