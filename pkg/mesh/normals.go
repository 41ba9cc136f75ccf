package mesh

// SynthesizeNormals accumulates a face normal onto every corner of each triangle.
// For a triangle (a, b, c) the face normal is (a-b) x (c-a), unnormalized,
// so a corner's result scales with the number and area of triangles touching it.
func SynthesizeNormals(vertices []VertexData, indices []uint32) {
	for t := 0; t+2 < len(indices); t += 3 {
		a, b, c := indices[t], indices[t+1], indices[t+2]
		v1 := vertices[a].Position.Sub(vertices[b].Position)
		v2 := vertices[c].Position.Sub(vertices[a].Position)
		n := v1.Cross(v2)

		vertices[a].Normal = vertices[a].Normal.Add(n)
		vertices[b].Normal = vertices[b].Normal.Add(n)
		vertices[c].Normal = vertices[c].Normal.Add(n)
	}
}

// NormalizeAll rescales every vertex normal to unit length in place.
func NormalizeAll(vertices []VertexData) {
	for i := range vertices {
		vertices[i].Normal = vertices[i].Normal.Normalize()
	}
}
