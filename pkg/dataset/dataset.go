// Package dataset reads one numeric column out of a CSV table, optionally
// keeping only the rows whose categorical field equals a given value.
package dataset

import (
	"context"
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	statistics "github.com/shashank-93rao/statinfer"
	"github.com/shashank-93rao/statinfer/pkg/statslog"
)

var (
	// ErrColumnNotFound is returned when a queried column is missing from the header.
	ErrColumnNotFound = errors.New("column not found")

	// ErrUnknownEncoding is returned for a text encoding label nobody recognises.
	ErrUnknownEncoding = errors.New("unknown text encoding")
)

// Query selects the values to read.
type Query struct {
	// Encoding is a WHATWG label such as "utf-8", "euc-kr" or "cp949".
	// Empty means UTF-8.
	Encoding string
	// FilterField and FilterValue keep rows where the field equals the value.
	// An empty FilterField keeps every row.
	FilterField string
	FilterValue string
	// ValueField is the numeric column to extract.
	ValueField string
}

// Counts reports what a scan saw.
type Counts struct {
	Rows    int // data rows read
	Matched int // rows passing the filter
	Dropped int // matched rows with an empty or NaN value
	Kept    int
}

var aliases = map[string]string{
	"cp949": "windows-949",
	"ms949": "windows-949",
	"utf8":  "utf-8",
}

func decoder(label string) (transform.Transformer, error) {
	name := strings.ToLower(strings.TrimSpace(label))
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	if name == "" || name == "utf-8" {
		return unicode.BOMOverride(unicode.UTF8.NewDecoder()), nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, errors.Wrapf(ErrUnknownEncoding, "%q", label)
	}
	return enc.NewDecoder(), nil
}

// Load returns the matching values in file order.
func Load(ctx context.Context, r io.Reader, q Query) ([]float64, error) {
	var values []float64
	_, err := scan(ctx, r, q, func(x float64) error {
		values = append(values, x)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}

// LoadFile opens path and calls Load.
func LoadFile(ctx context.Context, path string, q Query) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open dataset")
	}
	defer f.Close()
	return Load(ctx, f, q)
}

// Stream feeds the matching values into acc as they are read.
func Stream(ctx context.Context, r io.Reader, q Query, acc statistics.Statistics) (Counts, error) {
	return scan(ctx, r, q, func(x float64) error {
		return acc.Event(ctx, x)
	})
}

func scan(ctx context.Context, r io.Reader, q Query, emit func(float64) error) (Counts, error) {
	var counts Counts
	dec, err := decoder(q.Encoding)
	if err != nil {
		return counts, err
	}
	reader := csv.NewReader(transform.NewReader(r, dec))
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return counts, errors.Wrap(err, "read header")
	}
	valueIdx, err := columnIndex(header, q.ValueField)
	if err != nil {
		return counts, err
	}
	filterIdx := -1
	if q.FilterField != "" {
		if filterIdx, err = columnIndex(header, q.FilterField); err != nil {
			return counts, err
		}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return counts, errors.Wrapf(err, "read row %d", counts.Rows+1)
		}
		counts.Rows++
		if counts.Rows%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return counts, err
			}
		}

		if filterIdx >= 0 && field(record, filterIdx) != q.FilterValue {
			continue
		}
		counts.Matched++

		x, ok, err := parseValue(field(record, valueIdx))
		if err != nil {
			return counts, errors.Wrapf(err, "row %d, column %q", counts.Rows, q.ValueField)
		}
		if !ok {
			counts.Dropped++
			continue
		}
		if err := emit(x); err != nil {
			return counts, err
		}
		counts.Kept++
	}

	statslog.Zero.Debug().
		Int("rows", counts.Rows).
		Int("matched", counts.Matched).
		Int("dropped", counts.Dropped).
		Str("column", q.ValueField).
		Msg("dataset scanned")
	return counts, nil
}

func columnIndex(header []string, name string) (int, error) {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i, nil
		}
	}
	return -1, errors.Wrapf(ErrColumnNotFound, "%q", name)
}

func field(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// parseValue reports ok=false for missing values: empty cells and NaN.
// Thousands separators are accepted.
func parseValue(s string) (float64, bool, error) {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false, nil
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, err
	}
	if math.IsNaN(x) {
		return 0, false, nil
	}
	if math.IsInf(x, 0) {
		return 0, false, errors.Errorf("value %q is infinite", s)
	}
	return x, true, nil
}
