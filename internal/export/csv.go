package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"energy-insights/internal/model"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Options configures the delimited text output.
type Options struct {
	Delimiter rune
	// Substitute replaces the delimiter inside free-text fields.
	Substitute string
}

// DefaultOptions returns comma-delimited output with semicolon substitution.
func DefaultOptions() Options {
	return Options{Delimiter: ',', Substitute: ";"}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Delimiter == 0 {
		o.Delimiter = d.Delimiter
	}
	if o.Substitute == "" {
		o.Substitute = d.Substitute
		if o.Delimiter == ';' {
			o.Substitute = ","
		}
	}
	return o
}

// Validate checks the delimiter and substitute after defaults are applied.
// Neither may introduce a character that would force a field to be quoted.
func (o Options) Validate() error {
	o = o.withDefaults()
	if o.Delimiter == '"' || o.Delimiter == '\r' || o.Delimiter == '\n' ||
		!utf8.ValidRune(o.Delimiter) || o.Delimiter == utf8.RuneError {
		return fmt.Errorf("%w: invalid delimiter %q", model.ErrPrecondition, o.Delimiter)
	}
	// Numbers are written unsanitized.
	if strings.ContainsRune("0123456789.-", o.Delimiter) {
		return fmt.Errorf("%w: delimiter %q can appear in numbers", model.ErrPrecondition, o.Delimiter)
	}
	if strings.ContainsAny(o.Substitute, "\"\r\n") {
		return fmt.Errorf("%w: substitute %q contains a quote or line break", model.ErrPrecondition, o.Substitute)
	}
	if strings.ContainsRune(o.Substitute, o.Delimiter) {
		return fmt.Errorf("%w: substitute %q contains the delimiter", model.ErrPrecondition, o.Substitute)
	}
	return nil
}

func (o Options) validate(columns []Column) error {
	if len(columns) == 0 {
		return fmt.Errorf("%w: no columns", model.ErrPrecondition)
	}
	if dups := lo.FindDuplicatesBy(columns, func(c Column) string { return c.Key }); len(dups) > 0 {
		return fmt.Errorf("%w: duplicate column key %q", model.ErrPrecondition, dups[0].Key)
	}
	return o.Validate()
}

// Serialize renders rows as delimited text: a header line, then one line per
// row in the given column order.
func Serialize(rows []model.Record, columns []Column, opts Options) (string, error) {
	var b strings.Builder
	if err := WriteCSV(&b, rows, columns, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteCSV is Serialize writing to w. Text is sanitized so no field ever
// needs quoting; absent values are empty fields.
func WriteCSV(w io.Writer, rows []model.Record, columns []Column, opts Options) error {
	opts = opts.withDefaults()
	if err := opts.validate(columns); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.Comma = opts.Delimiter

	header := lo.Map(columns, func(c Column, _ int) string {
		return sanitize(c.Header, opts)
	})
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		fields := make([]string, len(columns))
		for i, c := range columns {
			fields[i] = formatField(row[c.Key], c, opts)
		}
		if err := cw.Write(fields); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatField(v any, c Column, opts Options) string {
	if c.Kind == Number {
		f, ok := numeric(v)
		if !ok {
			return ""
		}
		return fmtFloat(f, c.Decimals)
	}
	s, ok := textual(v)
	if !ok {
		return ""
	}
	return sanitize(s, opts)
}

func fmtFloat(x float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return decimal.NewFromFloat(x).StringFixed(int32(decimals))
}

var newlines = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ", `"`, "'")

// endOfData is the one field encoding/csv quotes regardless of content.
const endOfData = `\.`

func sanitize(s string, opts Options) string {
	s = newlines.Replace(s)
	s = strings.ReplaceAll(s, string(opts.Delimiter), opts.Substitute)
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if s == endOfData {
		s = `\ .`
	}
	return s
}

// numeric unwraps the value shapes that flattened records carry.
func numeric(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = x
	case *float64:
		if x == nil {
			return 0, false
		}
		f = *x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case *int:
		if x == nil {
			return 0, false
		}
		f = float64(*x)
	case int64:
		f = float64(x)
	case json.Number:
		p, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = p
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func textual(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case *string:
		if x == nil {
			return "", false
		}
		return *x, true
	case fmt.Stringer:
		return x.String(), true
	}
	if isNumeric(v) {
		f, ok := numeric(v)
		if !ok {
			return "", false
		}
		return decimal.NewFromFloat(f).String(), true
	}
	return fmt.Sprint(v), true
}

func isNumeric(v any) bool {
	switch v.(type) {
	case float64, *float64, float32, int, *int, int64, json.Number:
		return true
	}
	return false
}
