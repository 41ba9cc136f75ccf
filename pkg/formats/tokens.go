package formats

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/midgard-obj/pkg/math"
)

// SplitFields trims line and splits it on spaces, tabs and commas.
// Runs of delimiters never produce empty fields.
func SplitFields(line string) []string {
	return strings.FieldsFunc(strings.TrimSpace(line), func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
}

// ParseFloats parses every field as a 32-bit float.
// The first field that is not a number fails the whole call.
func ParseFloats(fields []string) ([]float32, error) {
	out := make([]float32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformedNumber, f)
		}
		out[i] = float32(v)
	}
	return out, nil
}

// parseVec3 parses exactly three floats.
func parseVec3(fields []string) (math.Vec3, error) {
	if len(fields) != 3 {
		return math.Vec3{}, fmt.Errorf("%w: expected 3 values, got %d", ErrUnsupportedArity, len(fields))
	}
	vals, err := ParseFloats(fields)
	if err != nil {
		return math.Vec3{}, err
	}
	return math.Vec3{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}

// parseFloat parses exactly one float.
func parseFloat(fields []string) (float32, error) {
	if len(fields) != 1 {
		return 0, fmt.Errorf("%w: expected 1 value, got %d", ErrUnsupportedArity, len(fields))
	}
	vals, err := ParseFloats(fields)
	if err != nil {
		return 0, err
	}
	return vals[0], nil
}

// splitKeyword separates the leading keyword from the rest of the line.
func splitKeyword(line string) (keyword, rest string) {
	line = strings.TrimSpace(line)
	if i := strings.IndexAny(line, " \t"); i != -1 {
		return line[:i], strings.TrimSpace(line[i+1:])
	}
	return line, ""
}

// splitLines splits text on '\n', dropping a trailing '\r' from each line.
// The final line is returned even without a terminating newline.
func splitLines(data []byte) []string {
	lines := strings.Split(string(data), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
