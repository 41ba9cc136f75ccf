// Package mesh turns a parsed OBJ document into renderer-ready vertex and index buffers.
package mesh

import (
	"github.com/Faultbox/midgard-obj/pkg/formats"
	"github.com/Faultbox/midgard-obj/pkg/math"
)

// VertexData is one flattened vertex: position, normal and texture coordinate.
// One is produced per face corner; vertices shared between faces are not merged.
type VertexData struct {
	Position math.Vec3
	Normal   math.Vec3
	TexCoord math.Vec3
}

// GroupRange is the slice of Model.Indices produced by one source group.
type GroupRange struct {
	Name       string
	Material   string
	StartIndex int
	IndexCount int
}

// Bounds holds the axis-aligned bounding box of the model.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Size returns the extent of the box on each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Model holds the assembled mesh.
// Indices are triangle corners into Vertices, three per triangle.
type Model struct {
	Name      string
	Vertices  []VertexData
	Indices   []uint32
	Groups    []GroupRange
	Materials []formats.Material
	Bounds    Bounds
	// SynthesizedNormals is set when the source had no normals and they were computed.
	SynthesizedNormals bool
}

// TriangleCount returns the number of triangles in the index buffer.
func (m *Model) TriangleCount() int {
	return len(m.Indices) / 3
}

// Material returns the material bound to a group, or nil when none matches.
func (m *Model) Material(g GroupRange) *formats.Material {
	if g.Material == "" {
		return nil
	}
	return formats.FindMaterial(m.Materials, g.Material)
}

// BuildOptions contains options for mesh building.
type BuildOptions struct {
	// NormalizeNormals rescales synthesized normals to unit length.
	// Off by default: synthesized normals are unnormalized sums of face normals.
	NormalizeNormals bool
}
