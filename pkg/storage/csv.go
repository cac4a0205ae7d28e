// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"github.com/kraklabs/geotree/pkg/catalog"
)

const (
	filePerms = 0o644
	utf8BOM   = "\ufeff"
)

// CSV reads and writes leaf files in comma-separated format.
type CSV struct {
	// Fields is the column order used when writing. Defaults to
	// catalog.DefaultFields.
	Fields []catalog.Field

	Logger *slog.Logger
}

// NewCSV returns a codec writing the default columns.
func NewCSV(logger *slog.Logger) *CSV {
	return &CSV{Fields: catalog.DefaultFields, Logger: logger}
}

func (c *CSV) fields() []catalog.Field {
	if len(c.Fields) == 0 {
		return catalog.DefaultFields
	}
	return c.Fields
}

func (c *CSV) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// Read parses the leaf file at path. Each record gets a clone of h and
// Source set to path. Rows that cannot be decoded are skipped and reported;
// a file that cannot be opened yields a single diagnostic and no records.
func (c *CSV) Read(path string, h catalog.Hierarchy) ([]*catalog.Record, []catalog.Diagnostic) {
	codecMetrics.init()

	f, err := os.Open(path)
	if err != nil {
		c.logger().Warn("codec.read.open_error", "path", path, "err", err)
		return nil, []catalog.Diagnostic{{Path: path, Err: classifyOpenError(err)}}
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, []catalog.Diagnostic{{Path: path, Line: 1, Err: rowError(err)}}
	}
	cols := indexHeader(header)

	var (
		records []*catalog.Record
		diags   []catalog.Diagnostic
	)
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				diags = append(diags, catalog.Diagnostic{Path: path, Line: pe.StartLine, Err: rowError(err)})
				codecMetrics.rowsSkipped.Inc()
				continue
			}
			diags = append(diags, catalog.Diagnostic{Path: path, Err: fmt.Errorf("%w: %w", catalog.ErrIO, err)})
			break
		}
		line, _ := r.FieldPos(0)

		rec, err := cols.decode(row)
		if err != nil {
			diags = append(diags, catalog.Diagnostic{Path: path, Line: line, Err: err})
			codecMetrics.rowsSkipped.Inc()
			continue
		}
		rec.Hierarchy = h.Clone()
		rec.Source = path
		records = append(records, rec)
	}

	codecMetrics.rowsRead.Add(float64(len(records)))
	if len(diags) > 0 {
		c.logger().Debug("codec.read.skipped", "path", path, "rows", len(diags))
	}
	return records, diags
}

// Rewrite replaces the file at path with a header and one row per record.
// The parent directory must exist.
func (c *CSV) Rewrite(path string, records []*catalog.Record) (err error) {
	codecMetrics.init()
	start := time.Now()
	defer func() {
		if err != nil {
			codecMetrics.writeErrors.Inc()
			c.logger().Error("codec.rewrite.error", "path", path, "err", err)
		}
	}()

	var buf bytes.Buffer
	if err := encode(&buf, c.fields(), records, true); err != nil {
		return err
	}

	_, statErr := os.Stat(path)
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("%w: rewrite %s: %w", catalog.ErrIO, path, err)
	}
	if os.IsNotExist(statErr) {
		if err := os.Chmod(path, filePerms); err != nil {
			return fmt.Errorf("%w: chmod %s: %w", catalog.ErrIO, path, err)
		}
	}

	codecMetrics.rewrites.Inc()
	codecMetrics.writeDuration.Observe(time.Since(start).Seconds())
	c.logger().Debug("codec.rewrite", "path", path, "records", len(records))
	return nil
}

// Append writes r at the end of the file at path. The header is written only
// when the file is created or empty. Rows added to an existing file follow
// that file's column order.
func (c *CSV) Append(path string, r *catalog.Record) (err error) {
	codecMetrics.init()
	start := time.Now()
	defer func() {
		if err != nil {
			codecMetrics.writeErrors.Inc()
			c.logger().Error("codec.append.error", "path", path, "err", err)
		}
	}()

	tail, err := inspectLeaf(path)
	if err != nil {
		return err
	}
	fields := tail.columns
	if tail.needHeader {
		fields = c.fields()
	}

	var buf bytes.Buffer
	if tail.needNewline {
		buf.WriteByte('\n')
	}
	if err := encode(&buf, fields, []*catalog.Record{r}, tail.needHeader); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerms)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", catalog.ErrIO, path, err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: append %s: %w", catalog.ErrIO, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", catalog.ErrIO, path, err)
	}

	codecMetrics.appends.Inc()
	codecMetrics.writeDuration.Observe(time.Since(start).Seconds())
	c.logger().Debug("codec.append", "path", path, "header", tail.needHeader)
	return nil
}

// encode writes records in fields order. A blank field is a column geotree
// does not manage; rows leave it empty.
func encode(w io.Writer, fields []catalog.Field, records []*catalog.Record, header bool) error {
	cw := csv.NewWriter(w)

	row := make([]string, len(fields))
	if header {
		for i, f := range fields {
			row[i] = string(f)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("%w: encode header: %w", catalog.ErrIO, err)
		}
	}
	for _, r := range records {
		for i, f := range fields {
			if f == "" {
				row[i] = ""
				continue
			}
			v, err := r.Format(f)
			if err != nil {
				return err
			}
			row[i] = v
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("%w: encode %q: %w", catalog.ErrIO, r.Name, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: encode: %w", catalog.ErrIO, err)
	}
	return nil
}

// leafTail tells how an append to a leaf file must start.
type leafTail struct {
	needHeader  bool            // missing or empty file
	needNewline bool            // last byte is not '\n'
	columns     []catalog.Field // existing column order, blank for foreign columns
}

func inspectLeaf(path string) (leafTail, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return leafTail{needHeader: true}, nil
	}
	if err != nil {
		return leafTail{}, fmt.Errorf("%w: inspect %s: %w", catalog.ErrIO, path, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return leafTail{}, fmt.Errorf("%w: inspect %s: %w", catalog.ErrIO, path, err)
	}
	if info.Size() == 0 {
		return leafTail{needHeader: true}, nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return leafTail{}, fmt.Errorf("%w: inspect %s: %w", catalog.ErrIO, path, err)
	}
	tail := leafTail{needNewline: last[0] != '\n'}

	header, err := csv.NewReader(f).Read()
	if errors.Is(err, io.EOF) {
		tail.needHeader = true
		return tail, nil
	}
	if err != nil {
		return leafTail{}, fmt.Errorf("%w: %s header: %w", catalog.ErrCorruptRow, path, err)
	}
	if tail.columns, err = headerFields(header); err != nil {
		return leafTail{}, fmt.Errorf("%s: %w", path, err)
	}
	return tail, nil
}

// headerFields maps a leaf file header to the fields it stores, rejecting
// headers that lack one of catalog.DefaultFields.
func headerFields(header []string) ([]catalog.Field, error) {
	cols := indexHeader(header)
	for _, f := range catalog.DefaultFields {
		if _, ok := cols.index[f]; !ok {
			return nil, fmt.Errorf("%w: header lacks column %q", catalog.ErrCorruptRow, f)
		}
	}
	out := make([]catalog.Field, cols.width)
	for f, i := range cols.index {
		if slices.Contains(catalog.DefaultFields, f) {
			out[i] = f
		}
	}
	return out, nil
}

// columns maps each required leaf field to its position in the header.
type columns struct {
	width int
	index map[catalog.Field]int
}

func indexHeader(header []string) columns {
	cols := columns{width: len(header), index: make(map[catalog.Field]int, len(header))}
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		cols.index[catalog.Field(strings.TrimSpace(name))] = i
	}
	return cols
}

func (cols columns) decode(row []string) (*catalog.Record, error) {
	if len(row) != cols.width {
		return nil, fmt.Errorf("%w: expected %d columns, got %d", catalog.ErrCorruptRow, cols.width, len(row))
	}
	get := func(f catalog.Field) (string, error) {
		i, ok := cols.index[f]
		if !ok {
			return "", fmt.Errorf("%w: missing column %q", catalog.ErrCorruptRow, f)
		}
		return row[i], nil
	}

	name, err := get(catalog.FieldName)
	if err != nil {
		return nil, err
	}
	rawPop, err := get(catalog.FieldPopulation)
	if err != nil {
		return nil, err
	}
	rawArea, err := get(catalog.FieldArea)
	if err != nil {
		return nil, err
	}

	pop, err := strconv.ParseInt(strings.TrimSpace(rawPop), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: population %q is not an integer", catalog.ErrCorruptRow, rawPop)
	}
	area, err := strconv.ParseFloat(strings.TrimSpace(rawArea), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: area %q is not a number", catalog.ErrCorruptRow, rawArea)
	}
	return &catalog.Record{Name: name, Population: pop, Area: area}, nil
}

func rowError(err error) error {
	return fmt.Errorf("%w: %w", catalog.ErrCorruptRow, err)
}

func classifyOpenError(err error) error {
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %w", catalog.ErrNotFound, err)
	}
	return fmt.Errorf("%w: %w", catalog.ErrIO, err)
}
