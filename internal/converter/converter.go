// =============================================================================
// JSON/CSV Converter - Converter Module
// =============================================================================
//
// This module runs the conversion pipeline for a single source file. It is
// the thin driver around the two pure functions in csvwriter and csvparser.
//
// CONVERSION PIPELINE:
//   1. Pick the direction from the source extension
//   2. Read the source file
//   3. .json: parse the JSON text, then encode it as delimited text
//      .csv:  decode the delimited text, then render it as indented JSON
//   4. Write the target file
//
// CONCURRENCY:
//   A Converter holds no per-run state, so one instance can serve many
//   goroutines. The batch command relies on this.
//
// =============================================================================

package converter

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ginjaninja78/JSON-CSV-conversion/internal/config"
	"github.com/ginjaninja78/JSON-CSV-conversion/internal/csvparser"
	"github.com/ginjaninja78/JSON-CSV-conversion/internal/csvwriter"
	"github.com/ginjaninja78/JSON-CSV-conversion/internal/jsonrecord"
	"github.com/ginjaninja78/JSON-CSV-conversion/internal/types"
	"github.com/ginjaninja78/JSON-CSV-conversion/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Direction is the conversion direction chosen from the source extension.
type Direction string

const (
	JSONToCSV Direction = "json->csv"
	CSVToJSON Direction = "csv->json"
)

// Result represents the outcome of converting a single file.
type Result struct {
	// SourceFile is the path to the input file.
	SourceFile string

	// TargetFile is the path to the output file.
	TargetFile string

	// Success indicates whether the target was written.
	Success bool

	// Error contains the error if the conversion failed.
	Error error

	// Stats contains conversion statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about one conversion.
type ProcessingStats struct {
	// Direction is the conversion direction.
	Direction Direction

	// Records is the number of records converted. A single record
	// counts as one.
	Records int

	// BytesRead is the size of the source file.
	BytesRead int

	// BytesWritten is the size of the target file.
	BytesWritten int

	// ProcessingTime is the time taken by the whole pipeline.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Logger is the logging surface the converter needs.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Converter converts files between JSON and delimited text.
type Converter struct {
	cfg    *config.Config
	logger Logger
}

// New creates a Converter. A nil cfg uses the defaults; a nil logger logs
// through the standard logrus logger.
func New(cfg *config.Config, logger Logger) *Converter {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Converter{cfg: cfg, logger: logger}
}

// NewLogger builds the logrus logger used by the CLI: text output to
// stderr at the configured level.
func NewLogger(level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return logger
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run converts source into target.
//
// RETURNS:
//   - A Result. Result.Error wraps one of the error kinds in the types
//     package: ErrUnsupportedExtension, ErrIOFailure,
//     ErrMalformedStructuredText, ErrInvalidRootShape or, in strict mode,
//     ErrMalformedDelimitedText.
func (c *Converter) Run(source, target string) Result {
	start := time.Now()
	result := Result{SourceFile: source, TargetFile: target}
	log := c.withRun(source)

	defer func() {
		result.Stats.ProcessingTime = time.Since(start)
	}()

	// =========================================================================
	// STEP 1: PICK THE DIRECTION
	// =========================================================================

	switch utils.Ext(source) {
	case utils.ExtJSON:
		result.Stats.Direction = JSONToCSV
	case utils.ExtCSV:
		result.Stats.Direction = CSVToJSON
	default:
		result.Error = fmt.Errorf("%w: %s", types.ErrUnsupportedExtension, source)
		return result
	}

	log.Debugf("Converting %s (%s)", source, result.Stats.Direction)

	// =========================================================================
	// STEP 2: READ THE SOURCE
	// =========================================================================

	data, err := utils.ReadSource(source)
	if err != nil {
		result.Error = err
		return result
	}
	result.Stats.BytesRead = len(data)

	// =========================================================================
	// STEP 3: CONVERT
	// =========================================================================

	var out []byte
	var root types.RootValue
	if result.Stats.Direction == JSONToCSV {
		out, root, err = c.jsonToCSV(data)
	} else {
		out, root, err = c.csvToJSON(data)
	}
	if err != nil {
		result.Error = err
		return result
	}
	result.Stats.Records = root.Count()

	log.Debugf("Converted %d record(s)", result.Stats.Records)

	// =========================================================================
	// STEP 4: WRITE THE TARGET
	// =========================================================================

	if err := utils.WriteTarget(target, out, c.cfg.Mode(), c.cfg.Atomic()); err != nil {
		result.Error = err
		return result
	}
	result.Stats.BytesWritten = len(out)
	result.Success = true

	log.Infof("Wrote %d bytes to %s", len(out), target)
	return result
}

// jsonToCSV parses JSON text and encodes it as delimited text.
func (c *Converter) jsonToCSV(data []byte) ([]byte, types.RootValue, error) {
	root, err := jsonrecord.Parse(data)
	if err != nil {
		return nil, root, err
	}
	text, err := csvwriter.EncodeWithOptions(root, csvwriter.Options{Quoting: c.cfg.Quoting()})
	if err != nil {
		return nil, root, err
	}
	return []byte(text), root, nil
}

// csvToJSON decodes delimited text and renders it as indented JSON.
func (c *Converter) csvToJSON(data []byte) ([]byte, types.RootValue, error) {
	root, err := csvparser.DecodeWithOptions(string(data), csvparser.Options{Strict: c.cfg.StrictQuotes})
	if err != nil {
		return nil, root, err
	}
	if root.Shape == types.ShapeRecord {
		c.logger.Debugf("Detected %s document", csvparser.KeyValueDocument)
	} else {
		c.logger.Debugf("Detected %s document", csvparser.TabularDocument)
	}
	out, err := jsonrecord.Marshal(root)
	if err != nil {
		return nil, root, err
	}
	return out, root, nil
}

// Load reads source into a RootValue without writing anything. The sheet
// command uses it to accept either source format.
func (c *Converter) Load(source string) (types.RootValue, error) {
	var load func([]byte) (types.RootValue, error)
	switch utils.Ext(source) {
	case utils.ExtJSON:
		load = jsonrecord.Parse
	case utils.ExtCSV:
		load = func(data []byte) (types.RootValue, error) {
			return csvparser.DecodeWithOptions(string(data), csvparser.Options{Strict: c.cfg.StrictQuotes})
		}
	default:
		return types.RootValue{}, fmt.Errorf("%w: %s", types.ErrUnsupportedExtension, source)
	}

	data, err := utils.ReadSource(source)
	if err != nil {
		return types.RootValue{}, err
	}
	return load(data)
}

// withRun tags log lines of one run with a short run id when the logger
// supports fields.
func (c *Converter) withRun(source string) Logger {
	fl, ok := c.logger.(logrus.FieldLogger)
	if !ok {
		return c.logger
	}
	return fl.WithFields(logrus.Fields{
		"run":    uuid.New().String()[:8],
		"source": source,
	})
}
