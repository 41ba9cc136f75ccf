package formats

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/midgard-obj/pkg/math"
)

// Material is one newmtl block of an MTL file.
// Nil fields were not set by the file.
type Material struct {
	Name string

	Ns *float32   // specular exponent
	Ka *math.Vec3 // ambient color
	Kd *math.Vec3 // diffuse color
	Ks *math.Vec3 // specular color
	Ni *float32   // optical density
	D  *float32   // dissolve (alpha)

	Illum *int // illumination model

	MapKd string // diffuse texture path
}

type mtlParser struct {
	materials []Material
}

func (p *mtlParser) current() *Material {
	if len(p.materials) == 0 {
		return nil
	}
	return &p.materials[len(p.materials)-1]
}

// ParseMTL parses MTL text into its materials, in file order.
func ParseMTL(data []byte) ([]Material, error) {
	p := &mtlParser{}
	for i, line := range splitLines(data) {
		if err := p.parseLine(line); err != nil {
			return nil, lineError(i+1, strings.TrimSpace(line), err)
		}
	}
	return p.materials, nil
}

// ParseMTLFile parses an MTL file from disk.
func ParseMTLFile(path string) ([]Material, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Err: fmt.Errorf("%w: reading MTL file: %w", ErrIO, err)}
	}
	return ParseMTL(data)
}

func (p *mtlParser) parseLine(line string) error {
	keyword, rest := splitKeyword(line)
	if keyword == "" || strings.HasPrefix(keyword, "#") {
		return nil
	}

	if keyword == "newmtl" {
		p.materials = append(p.materials, Material{Name: rest})
		return nil
	}

	switch keyword {
	case "Ns", "Ka", "Kd", "Ks", "Ni", "d", "illum", "map_Kd":
	default:
		return nil
	}

	mat := p.current()
	if mat == nil {
		return fmt.Errorf("%w: %s before newmtl", ErrMissingContext, keyword)
	}
	fields := SplitFields(rest)

	switch keyword {
	case "Ns", "Ni", "d":
		v, err := parseFloat(fields)
		if err != nil {
			return fmt.Errorf("%s: %w", keyword, err)
		}
		switch keyword {
		case "Ns":
			mat.Ns = &v
		case "Ni":
			mat.Ni = &v
		default:
			mat.D = &v
		}

	case "Ka", "Kd", "Ks":
		c, err := parseVec3(fields)
		if err != nil {
			return fmt.Errorf("%s: %w", keyword, err)
		}
		switch keyword {
		case "Ka":
			mat.Ka = &c
		case "Kd":
			mat.Kd = &c
		default:
			mat.Ks = &c
		}

	case "illum":
		if len(fields) != 1 {
			return fmt.Errorf("illum: %w: expected 1 value, got %d", ErrUnsupportedArity, len(fields))
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("illum: %w: %q", ErrMalformedNumber, fields[0])
		}
		mat.Illum = &n

	case "map_Kd":
		mat.MapKd = rest
	}
	return nil
}

// FindMaterial returns the material with the given name, or nil.
func FindMaterial(materials []Material, name string) *Material {
	for i := range materials {
		if materials[i].Name == name {
			return &materials[i]
		}
	}
	return nil
}
