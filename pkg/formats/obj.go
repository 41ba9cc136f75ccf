package formats

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/midgard-obj/pkg/math"
)

// DefaultGroupName names the group created when faces appear before any g/o line.
const DefaultGroupName = "default"

// FaceItem is one corner of a face. Indices are 1-based as written in the file.
type FaceItem struct {
	Vertex      int
	TexCoord    int
	Normal      int
	HasTexCoord bool
	HasNormal   bool
}

// Face is an ordered polygon of at least three corners.
// Order is kept from the source; triangulation fans from Items[0].
type Face struct {
	Items []FaceItem
}

// Group is a named run of faces (g/o) with an optional material (usemtl).
type Group struct {
	Name     string
	Material string
	Faces    []Face
}

// Document is the intermediate result of an OBJ parse.
// The pools are 0-indexed here while faces reference them 1-indexed.
type Document struct {
	Vertices  []math.Vec3
	Normals   []math.Vec3
	TexCoords []math.Vec3
	Groups    []Group
	// MtlLib is the material library path relative to the OBJ file.
	MtlLib string
}

// FaceCount returns the number of faces over all groups.
func (d *Document) FaceCount() int {
	n := 0
	for _, g := range d.Groups {
		n += len(g.Faces)
	}
	return n
}

// currentGroup returns the group faces are appended to, or nil before any g/o.
func (d *Document) currentGroup() *Group {
	if len(d.Groups) == 0 {
		return nil
	}
	return &d.Groups[len(d.Groups)-1]
}

func (d *Document) startGroup(name string) {
	d.Groups = append(d.Groups, Group{Name: name})
}

// ParseOBJ parses OBJ text into a Document.
// The first malformed line aborts the parse; no partial document is returned.
func ParseOBJ(data []byte) (*Document, error) {
	doc := &Document{}
	for i, line := range splitLines(data) {
		if err := doc.parseLine(line); err != nil {
			return nil, lineError(i+1, strings.TrimSpace(line), err)
		}
	}
	return doc, nil
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Err: fmt.Errorf("%w: reading OBJ file: %w", ErrIO, err)}
	}
	return ParseOBJ(data)
}

func (d *Document) parseLine(line string) error {
	keyword, rest := splitKeyword(line)
	if keyword == "" || strings.HasPrefix(keyword, "#") {
		return nil
	}
	fields := SplitFields(rest)

	switch keyword {
	case "v":
		v, err := parseVec3(fields)
		if err != nil {
			return fmt.Errorf("vertex: %w", err)
		}
		d.Vertices = append(d.Vertices, v)

	case "vn":
		n, err := parseVec3(fields)
		if err != nil {
			return fmt.Errorf("normal: %w", err)
		}
		d.Normals = append(d.Normals, n)

	case "vt":
		tc, err := parseTexCoord(fields)
		if err != nil {
			return fmt.Errorf("texcoord: %w", err)
		}
		d.TexCoords = append(d.TexCoords, tc)

	case "f":
		face, err := parseFace(fields)
		if err != nil {
			return fmt.Errorf("face: %w", err)
		}
		if d.currentGroup() == nil {
			d.startGroup(DefaultGroupName)
		}
		g := d.currentGroup()
		g.Faces = append(g.Faces, face)

	case "g", "o":
		name := DefaultGroupName
		if len(fields) > 0 {
			name = fields[0]
		}
		d.startGroup(name)

	case "s":
		// Smoothing groups are not supported.

	case "mtllib":
		if len(fields) > 0 {
			d.MtlLib = fields[0]
		}

	case "usemtl":
		g := d.currentGroup()
		if g == nil {
			return fmt.Errorf("%w: usemtl before any group", ErrMissingContext)
		}
		if len(fields) > 0 {
			g.Material = fields[0]
		}
	}
	return nil
}

// parseTexCoord accepts "u v" (w = 0) or "u v w".
func parseTexCoord(fields []string) (math.Vec3, error) {
	switch len(fields) {
	case 2:
		vals, err := ParseFloats(fields)
		if err != nil {
			return math.Vec3{}, err
		}
		return math.Vec3{X: vals[0], Y: vals[1]}, nil
	case 3:
		return parseVec3(fields)
	default:
		return math.Vec3{}, fmt.Errorf("%w: expected 2 or 3 values, got %d", ErrUnsupportedArity, len(fields))
	}
}

func parseFace(fields []string) (Face, error) {
	if len(fields) < 3 {
		return Face{}, fmt.Errorf("%w: expected at least 3 corners, got %d", ErrUnsupportedArity, len(fields))
	}
	face := Face{Items: make([]FaceItem, 0, len(fields))}
	for _, f := range fields {
		item, err := ParseFaceItem(f)
		if err != nil {
			return Face{}, err
		}
		face.Items = append(face.Items, item)
	}
	return face, nil
}

// ParseFaceItem parses one face corner: "v", "v/vt", "v/vt/vn" or "v//vn".
// The vertex index must be a number. An optional index that does not parse
// is treated as absent.
func ParseFaceItem(field string) (FaceItem, error) {
	parts := strings.Split(field, "/")
	if len(parts) > 3 {
		return FaceItem{}, fmt.Errorf("%w: %d components in %q", ErrUnsupportedArity, len(parts), field)
	}

	vertex, err := strconv.Atoi(parts[0])
	if err != nil {
		return FaceItem{}, fmt.Errorf("%w: vertex index %q", ErrMalformedNumber, parts[0])
	}
	item := FaceItem{Vertex: vertex}

	if len(parts) > 1 {
		if tc, err := strconv.Atoi(parts[1]); err == nil {
			item.TexCoord = tc
			item.HasTexCoord = true
		}
	}
	if len(parts) > 2 {
		if n, err := strconv.Atoi(parts[2]); err == nil {
			item.Normal = n
			item.HasNormal = true
		}
	}
	return item, nil
}
