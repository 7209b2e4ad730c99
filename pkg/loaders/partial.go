package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-smallpt/pkg/core"
	"github.com/df07/go-smallpt/pkg/film"
)

// Partial file format errors. Each is wrapped in a *FormatError.
var (
	ErrBadHeader   = errors.New("bad header")
	ErrBadRowWidth = errors.New("bad row width")
	ErrBadRowCount = errors.New("bad row count")
	ErrBadNumber   = errors.New("bad number")
)

// FormatError describes a malformed partial file
type FormatError struct {
	File     string // Name of the file being read
	Line     int    // 1-based line number, 0 when the error concerns the whole file
	Err      error  // One of the ErrBad* sentinels
	Expected string
	Actual   string
}

func (e *FormatError) Error() string {
	location := e.File
	if e.Line > 0 {
		location = fmt.Sprintf("%s:%d", e.File, e.Line)
	}
	if e.Expected == "" && e.Actual == "" {
		return fmt.Sprintf("%s: %v", location, e.Err)
	}
	return fmt.Sprintf("%s: %v: expected %s, got %s", location, e.Err, e.Expected, e.Actual)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

const (
	// maxLineSize bounds a single row of a partial file
	maxLineSize = 64 * 1024 * 1024

	// maxPixels bounds width*height before the buffer is allocated
	maxPixels = 1 << 26
)

// WritePartial serializes the raw radiance sums of a buffer.
// The header is "<width> <height> <samples>", followed by one line per row of
// space-separated "x y z" triples.
func WritePartial(w io.Writer, buf *film.Buffer) error {
	writer := bufio.NewWriter(w)
	fmt.Fprintf(writer, "%d %d %d\n", buf.Width, buf.Height, buf.Samples)

	line := make([]byte, 0, 64*buf.Width)
	for y := 0; y < buf.Height; y++ {
		line = line[:0]
		for x, sum := range buf.Row(y) {
			if x != 0 {
				line = append(line, ' ')
			}
			line = strconv.AppendFloat(line, sum.X, 'g', -1, 64)
			line = append(line, ' ')
			line = strconv.AppendFloat(line, sum.Y, 'g', -1, 64)
			line = append(line, ' ')
			line = strconv.AppendFloat(line, sum.Z, 'g', -1, 64)
		}
		line = append(line, '\n')
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("failed to write row %d: %w", y, err)
		}
	}

	return writer.Flush()
}

// ReadPartial parses a partial file. name is only used in error messages.
// Blank lines are ignored.
func ReadPartial(r io.Reader, name string) (*film.Buffer, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), maxLineSize)

	lineNumber := 0
	nextLine := func() (string, bool) {
		for scanner.Scan() {
			lineNumber++
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				return line, true
			}
		}
		return "", false
	}

	header, ok := nextLine()
	if !ok {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("error reading %s: %w", name, err)
		}
		return nil, &FormatError{File: name, Err: ErrBadHeader, Expected: "3 integers", Actual: "empty file"}
	}
	width, height, samples, err := parseHeader(header)
	if err != nil {
		return nil, &FormatError{File: name, Line: lineNumber, Err: ErrBadHeader, Expected: "3 integers", Actual: fmt.Sprintf("%q", header)}
	}

	buf := film.NewBuffer(width, height)
	buf.Samples = samples

	rows := 0
	for {
		line, ok := nextLine()
		if !ok {
			break
		}
		if rows >= height {
			rows++
			continue
		}

		fields := strings.Fields(line)
		if len(fields)%3 != 0 || len(fields)/3 != width {
			return nil, &FormatError{
				File:     name,
				Line:     lineNumber,
				Err:      ErrBadRowWidth,
				Expected: fmt.Sprintf("%d triples", width),
				Actual:   fmt.Sprintf("%d values", len(fields)),
			}
		}

		row := buf.Row(rows)
		for x := range row {
			var v [3]float64
			for c := range v {
				field := fields[3*x+c]
				if v[c], err = strconv.ParseFloat(field, 64); err != nil {
					return nil, &FormatError{File: name, Line: lineNumber, Err: ErrBadNumber, Expected: "a float", Actual: fmt.Sprintf("%q", field)}
				}
			}
			row[x] = core.NewVec3(v[0], v[1], v[2])
		}
		rows++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", name, err)
	}

	if rows != height {
		return nil, &FormatError{
			File:     name,
			Err:      ErrBadRowCount,
			Expected: fmt.Sprintf("%d rows", height),
			Actual:   fmt.Sprintf("%d rows", rows),
		}
	}

	return buf, nil
}

func parseHeader(line string) (width, height, samples int, err error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return 0, 0, 0, fmt.Errorf("expected 3 fields, got %d", len(fields))
	}

	var values [3]int
	for i, field := range fields {
		if values[i], err = strconv.Atoi(field); err != nil {
			return 0, 0, 0, err
		}
	}
	if values[0] <= 0 || values[1] <= 0 || values[2] < 0 {
		return 0, 0, 0, fmt.Errorf("invalid header values %v", values)
	}
	if values[0] > maxPixels/values[1] {
		return 0, 0, 0, fmt.Errorf("image %dx%d exceeds %d pixels", values[0], values[1], maxPixels)
	}
	return values[0], values[1], values[2], nil
}

// LoadPartial reads a partial file from disk
func LoadPartial(filename string) (*film.Buffer, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open partial file: %w", err)
	}
	defer file.Close()

	return ReadPartial(bufio.NewReader(file), filename)
}

// SavePartial writes a buffer to disk in the partial format
func SavePartial(filename string, buf *film.Buffer) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create partial file: %w", err)
	}

	if err := WritePartial(file, buf); err != nil {
		file.Close()
		return fmt.Errorf("failed to write partial file %s: %w", filename, err)
	}
	return file.Close()
}
