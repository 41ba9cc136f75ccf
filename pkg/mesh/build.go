package mesh

import (
	"fmt"

	"github.com/Faultbox/midgard-obj/pkg/formats"
	"github.com/Faultbox/midgard-obj/pkg/math"
)

// Build resolves every face of doc into flattened vertices and a fan-triangulated
// index list. When doc has no normals, normals are synthesized from the faces.
func Build(name string, doc *formats.Document, opts BuildOptions) (*Model, error) {
	m := &Model{Name: name}

	// Both optional channels are resolved only when both pools are populated;
	// otherwise every vertex gets a zero normal and texcoord.
	resolveAttribs := len(doc.Normals) > 0 && len(doc.TexCoords) > 0

	first := true
	for gi := range doc.Groups {
		group := &doc.Groups[gi]
		start := len(m.Indices)

		for fi, face := range group.Faces {
			base := len(m.Vertices)
			for ii, item := range face.Items {
				vd, err := resolveItem(doc, item, resolveAttribs)
				if err != nil {
					return nil, &formats.ParseError{
						Err: fmt.Errorf("group %q face %d corner %d: %w", group.Name, fi, ii, err),
					}
				}
				if first {
					m.Bounds = Bounds{Min: vd.Position, Max: vd.Position}
					first = false
				} else {
					m.Bounds.Min = m.Bounds.Min.Min(vd.Position)
					m.Bounds.Max = m.Bounds.Max.Max(vd.Position)
				}
				m.Vertices = append(m.Vertices, vd)
			}
			m.Indices = append(m.Indices, Triangulate(uint32(base), len(face.Items))...)
		}

		m.Groups = append(m.Groups, GroupRange{
			Name:       group.Name,
			Material:   group.Material,
			StartIndex: start,
			IndexCount: len(m.Indices) - start,
		})
	}

	if len(doc.Normals) == 0 {
		SynthesizeNormals(m.Vertices, m.Indices)
		if opts.NormalizeNormals {
			NormalizeAll(m.Vertices)
		}
		m.SynthesizedNormals = true
	}

	return m, nil
}

// Triangulate fans a polygon of n corners whose vertices start at base:
// (base, base+i+1, base+i+2) for i in [0, n-3]. It yields 3*(n-2) indices.
// No convexity or winding check is made.
func Triangulate(base uint32, n int) []uint32 {
	if n < 3 {
		return nil
	}
	out := make([]uint32, 0, 3*(n-2))
	for i := 0; i < n-2; i++ {
		out = append(out, base, base+uint32(i)+1, base+uint32(i)+2)
	}
	return out
}

func resolveItem(doc *formats.Document, item formats.FaceItem, resolveAttribs bool) (VertexData, error) {
	pos, err := lookup(doc.Vertices, item.Vertex, "vertex")
	if err != nil {
		return VertexData{}, err
	}
	vd := VertexData{Position: pos}
	if !resolveAttribs {
		return vd, nil
	}

	if !item.HasNormal {
		return VertexData{}, fmt.Errorf("%w: corner has no normal index", formats.ErrDanglingReference)
	}
	if !item.HasTexCoord {
		return VertexData{}, fmt.Errorf("%w: corner has no texcoord index", formats.ErrDanglingReference)
	}
	if vd.Normal, err = lookup(doc.Normals, item.Normal, "normal"); err != nil {
		return VertexData{}, err
	}
	if vd.TexCoord, err = lookup(doc.TexCoords, item.TexCoord, "texcoord"); err != nil {
		return VertexData{}, err
	}
	return vd, nil
}

// lookup resolves a 1-based index into pool.
func lookup(pool []math.Vec3, index int, kind string) (math.Vec3, error) {
	if index < 1 || index > len(pool) {
		return math.Vec3{}, fmt.Errorf("%w: %s index %d out of range [1, %d]",
			formats.ErrDanglingReference, kind, index, len(pool))
	}
	return pool[index-1], nil
}
