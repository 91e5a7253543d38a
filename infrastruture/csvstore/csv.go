// Package csvstore reads and writes carved grids as one CSV record per cell.
//
// The header is x,y,left,up,right,down,visited. Decoding maps columns by name, so files with
// extra columns or a different column order, such as the indexed table dumps of older tooling,
// load as well.
package csvstore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/beka-birhanu/vinom-maze/maze"
)

var (
	ErrMissingColumn = errors.New("missing column")
	ErrBadRecord     = errors.New("malformed cell record")
	ErrIncomplete    = errors.New("cell records do not cover the grid")
)

// Header lists the columns written by Encode.
var Header = []string{"x", "y", "left", "up", "right", "down", "visited"}

// Encode writes g to w, one record per cell in x-major order.
func Encode(w io.Writer, g *maze.Grid) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}

	var writeErr error
	g.Walk(func(p maze.Position, c maze.Cell) {
		if writeErr != nil {
			return
		}
		writeErr = cw.Write([]string{
			strconv.Itoa(p.X),
			strconv.Itoa(p.Y),
			strconv.FormatBool(c.LeftWall),
			strconv.FormatBool(c.UpWall),
			strconv.FormatBool(c.RightWall),
			strconv.FormatBool(c.DownWall),
			strconv.FormatBool(c.Visited),
		})
	})
	if writeErr != nil {
		return writeErr
	}

	cw.Flush()
	return cw.Error()
}

type record struct {
	pos  maze.Position
	cell maze.Cell
}

// Decode reads a grid written by Encode. Dimensions are inferred from the largest coordinates;
// every cell must appear exactly once and the result must pass maze.Grid.Validate.
func Decode(r io.Reader) (*maze.Grid, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty input", ErrIncomplete)
		}
		return nil, err
	}
	columns, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var records []record
	width, height := 0, 0
	for line := 2; ; line++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		rec, err := parseRecord(fields, columns)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
		width = max(width, rec.pos.X+1)
		height = max(height, rec.pos.Y+1)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no cells", ErrIncomplete)
	}
	if len(records) != width*height {
		return nil, fmt.Errorf("%w: %d records for %dx%d grid", ErrIncomplete, len(records), width, height)
	}

	g, err := maze.New(width, height)
	if err != nil {
		return nil, err
	}

	seen := make(map[maze.Position]struct{}, len(records))
	for _, rec := range records {
		if _, dup := seen[rec.pos]; dup {
			return nil, fmt.Errorf("%w: duplicate cell %s", ErrBadRecord, rec.pos)
		}
		seen[rec.pos] = struct{}{}

		cell, err := g.At(rec.pos.X, rec.pos.Y)
		if err != nil {
			return nil, err
		}
		*cell = rec.cell
	}

	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRecord, err)
	}
	return g, nil
}

// Save writes g to the file at path, creating parent directories as needed.
func Save(path string, g *maze.Grid) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Encode(f, g); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Load reads the grid stored at path.
func Load(path string) (*maze.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

func columnIndex(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, name := range Header {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}
	return columns, nil
}

func parseRecord(fields []string, columns map[string]int) (record, error) {
	field := func(name string) (string, error) {
		i := columns[name]
		if i >= len(fields) {
			return "", fmt.Errorf("%w: missing %s", ErrBadRecord, name)
		}
		return strings.TrimSpace(fields[i]), nil
	}

	coord := func(name string) (int, error) {
		raw, err := field(name)
		if err != nil {
			return 0, err
		}
		// Table dumps may carry integral floats such as "3.0".
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v != float64(int(v)) {
			return 0, fmt.Errorf("%w: %s=%q", ErrBadRecord, name, raw)
		}
		return int(v), nil
	}

	flag := func(name string) (bool, error) {
		raw, err := field(name)
		if err != nil {
			return false, err
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return false, fmt.Errorf("%w: %s=%q", ErrBadRecord, name, raw)
		}
		return v, nil
	}

	var rec record
	var err error
	if rec.pos.X, err = coord("x"); err != nil {
		return rec, err
	}
	if rec.pos.Y, err = coord("y"); err != nil {
		return rec, err
	}
	if rec.cell.LeftWall, err = flag("left"); err != nil {
		return rec, err
	}
	if rec.cell.UpWall, err = flag("up"); err != nil {
		return rec, err
	}
	if rec.cell.RightWall, err = flag("right"); err != nil {
		return rec, err
	}
	if rec.cell.DownWall, err = flag("down"); err != nil {
		return rec, err
	}
	if rec.cell.Visited, err = flag("visited"); err != nil {
		return rec, err
	}
	return rec, nil
}
