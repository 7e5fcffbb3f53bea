// Package store reads and writes whole journal tables in the file format selected by the
// path suffix.
package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/FACorreiaa/statement-converter/pkg/table"
)

// Format is a supported journal file format
type Format string

const (
	FormatCSV     Format = "csv"
	FormatXLSX    Format = "xlsx"
	FormatJSON    Format = "json"
	FormatGob     Format = "gob"
	FormatParquet Format = "parquet"
	FormatSQLite  Format = "sqlite"
	FormatBolt    Format = "bolt"
)

// ErrUnsupportedFormat is wrapped by every UnsupportedFormatError
var ErrUnsupportedFormat = errors.New("unsupported file type")

// UnsupportedFormatError reports a suffix that maps to no format
type UnsupportedFormatError struct {
	Suffix string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.Suffix)
}

func (e *UnsupportedFormatError) Unwrap() error {
	return ErrUnsupportedFormat
}

// names maps suffixes (without the dot) to formats
var names = map[string]Format{
	"csv":     FormatCSV,
	"xlsx":    FormatXLSX,
	"excel":   FormatXLSX,
	"json":    FormatJSON,
	"gob":     FormatGob,
	"parquet": FormatParquet,
	"sqlite":  FormatSQLite,
	"bolt":    FormatBolt,
}

// Codec reads and writes a whole table in one format
type Codec interface {
	Read(path string) (*table.Table, error)
	Write(path string, t *table.Table) error
}

var codecs = map[Format]Codec{
	FormatCSV:     csvCodec{},
	FormatXLSX:    excelCodec{},
	FormatJSON:    jsonCodec{},
	FormatGob:     gobCodec{},
	FormatParquet: parquetCodec{},
	FormatSQLite:  sqliteCodec{},
	FormatBolt:    boltCodec{},
}

// Formats lists every supported format
func Formats() []Format {
	return []Format{FormatCSV, FormatXLSX, FormatJSON, FormatGob, FormatParquet, FormatSQLite, FormatBolt}
}

// ParseFormat resolves a format name such as "csv" or "excel", case-insensitively
func ParseFormat(name string) (Format, error) {
	if f, ok := names[strings.ToLower(name)]; ok {
		return f, nil
	}
	return "", &UnsupportedFormatError{Suffix: name}
}

// Suffix returns the suffix this package writes for the format, dot included
func (f Format) Suffix() string {
	return "." + string(f)
}

// FormatFromPath returns the format selected by the path suffix
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Read loads the table stored at path. Unsupported suffixes fail before the file is touched.
func Read(path string) (*table.Table, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	t, err := codecs[format].Read(path)
	if err != nil {
		return nil, fmt.Errorf("could not read file %s: %w", path, err)
	}
	return t, nil
}

// Write replaces the file at path with the table. Unsupported suffixes fail before any I/O.
func Write(path string, t *table.Table) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if err := codecs[format].Write(path, t); err != nil {
		return fmt.Errorf("could not write file %s: %w", path, err)
	}
	return nil
}

// WithDefaultSuffix appends the format's suffix when the path has none
func WithDefaultSuffix(path string, format Format) string {
	if filepath.Ext(path) != "" {
		return path
	}
	return path + format.Suffix()
}

// padded returns the row stretched or cut to n cells
func padded(row []string, n int) []string {
	out := make([]string, n)
	copy(out, row)
	return out
}
