// Package handrect parses hand-detector hint files.
//
// Each line of a hint file holds one rectangle as four whitespace-separated numbers
// "x y width height". A file describes one hand: when its base name (without extension)
// ends in 'l' every rectangle is a left-hand hint, otherwise a right-hand hint. Each parsed
// rectangle is returned as a Pair whose other slot is the zero Rectangle.
//
// Names ending in "left" in any letter case ("hand_left.txt", "HAND_LEFT.txt") are also
// left-hand files. This extends the lowercase 'l' rule that older tools use, which would
// read "HAND_LEFT.txt" as a right-hand file.
package handrect

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/arloliu/posefile/errs"
	"github.com/arloliu/posefile/internal/pathutil"
	"github.com/arloliu/posefile/pkg/metrics"
)

// fieldsPerLine is the number of numbers on every line.
const fieldsPerLine = 4

// Rectangle is an axis-aligned box in image coordinates.
type Rectangle struct {
	X      float32
	Y      float32
	Width  float32
	Height float32
}

// IsZero reports whether r is the zero Rectangle.
func (r Rectangle) IsZero() bool {
	return r == Rectangle{}
}

// Area returns Width * Height.
func (r Rectangle) Area() float32 {
	return r.Width * r.Height
}

// String renders r as "x y width height", the line format Parse reads.
func (r Rectangle) String() string {
	return strings.Join([]string{
		strconv.FormatFloat(float64(r.X), 'g', -1, 32),
		strconv.FormatFloat(float64(r.Y), 'g', -1, 32),
		strconv.FormatFloat(float64(r.Width), 'g', -1, 32),
		strconv.FormatFloat(float64(r.Height), 'g', -1, 32),
	}, " ")
}

// Pair holds the left and right hand hints of one person.
type Pair struct {
	Left  Rectangle
	Right Rectangle
}

// IsLeftPath reports whether path names a left-hand hint file: its base name ends in 'l'
// ("0001l.txt") or in "left", in any case ("hand_left.txt", "HAND_LEFT.txt").
func IsLeftPath(path string) bool {
	base := pathutil.FileNameNoExtension(path)

	return strings.HasSuffix(base, "l") || strings.HasSuffix(strings.ToLower(base), "left")
}

// ParseFile parses the hint file at path, choosing the hand from its name.
//
// Returns errs.ErrIO if the file cannot be opened or read and errs.ErrMalformedLine for the
// first line that is not exactly four numbers. An empty file yields an empty slice.
func ParseFile(path string) ([]Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		err = fmt.Errorf("%w: open %s: %w", errs.ErrIO, path, err)
		metrics.RecordErrorByComponent(metrics.ComponentHandRect, metrics.ErrorType(err))

		return nil, err
	}
	defer f.Close()

	pairs, err := Parse(f, IsLeftPath(path))
	if err != nil {
		metrics.RecordErrorByComponent(metrics.ComponentHandRect, metrics.ErrorType(err))
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	metrics.RecordRectFileParsed(len(pairs))

	return pairs, nil
}

// Parse reads rectangles from r, one per line, placing each in the Left slot when left is
// true and in the Right slot otherwise.
//
// Blank lines count as lines with zero numbers and are rejected like any other count.
func Parse(r io.Reader, left bool) ([]Pair, error) {
	pairs := []Pair{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++

		rect, err := parseLine(scanner.Text(), lineNo)
		if err != nil {
			return nil, err
		}

		if left {
			pairs = append(pairs, Pair{Left: rect})
		} else {
			pairs = append(pairs, Pair{Right: rect})
		}
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("%w: line %d: %w", errs.ErrMalformedLine, lineNo+1, err)
		}

		return nil, fmt.Errorf("%w: read line %d: %w", errs.ErrIO, lineNo+1, err)
	}

	return pairs, nil
}

func parseLine(line string, lineNo int) (Rectangle, error) {
	tokens := strings.Fields(line)
	if len(tokens) != fieldsPerLine {
		return Rectangle{}, fmt.Errorf("%w: line %d has %d values, want %d",
			errs.ErrMalformedLine, lineNo, len(tokens), fieldsPerLine)
	}

	var v [fieldsPerLine]float32
	for i, tok := range tokens {
		f, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return Rectangle{}, fmt.Errorf("%w: line %d value %d %q is not a number",
				errs.ErrMalformedLine, lineNo, i+1, tok)
		}
		v[i] = float32(f)
	}

	return Rectangle{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}
