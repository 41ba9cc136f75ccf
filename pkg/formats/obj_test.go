package formats

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-obj/pkg/math"
)

const cubeFaceOBJ = `# one quad with full attributes
mtllib cube.mtl
o Cube
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl Red
s off
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestParseOBJ_Basic(t *testing.T) {
	doc, err := ParseOBJ([]byte(cubeFaceOBJ))
	require.NoError(t, err)

	assert.Len(t, doc.Vertices, 4)
	assert.Len(t, doc.TexCoords, 4)
	assert.Len(t, doc.Normals, 1)
	assert.Equal(t, "cube.mtl", doc.MtlLib)

	require.Len(t, doc.Groups, 1)
	g := doc.Groups[0]
	assert.Equal(t, "Cube", g.Name)
	assert.Equal(t, "Red", g.Material)
	require.Len(t, g.Faces, 1)
	assert.Len(t, g.Faces[0].Items, 4)
	assert.Equal(t, FaceItem{Vertex: 3, TexCoord: 3, Normal: 1, HasTexCoord: true, HasNormal: true}, g.Faces[0].Items[2])
	assert.Equal(t, 1, doc.FaceCount())
}

func TestParseOBJ_SingleTriangle(t *testing.T) {
	doc, err := ParseOBJ([]byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"))
	require.NoError(t, err)

	require.Len(t, doc.Groups, 1)
	assert.Equal(t, DefaultGroupName, doc.Groups[0].Name)
	require.Len(t, doc.Groups[0].Faces, 1)
	for i, item := range doc.Groups[0].Faces[0].Items {
		assert.Equal(t, i+1, item.Vertex)
		assert.False(t, item.HasTexCoord)
		assert.False(t, item.HasNormal)
	}
}

func TestParseOBJ_LastLineWithoutNewline(t *testing.T) {
	doc, err := ParseOBJ([]byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3"))
	require.NoError(t, err)
	assert.Equal(t, 1, doc.FaceCount())
}

func TestParseOBJ_CRLF(t *testing.T) {
	doc, err := ParseOBJ([]byte("v 0 0 0\r\nv 1 0 0\r\nv 0 1 0\r\nf 1 2 3\r\n"))
	require.NoError(t, err)
	assert.Len(t, doc.Vertices, 3)
	assert.Equal(t, 1, doc.FaceCount())
}

func TestParseOBJ_TexCoordArity(t *testing.T) {
	doc, err := ParseOBJ([]byte("vt 0.25 0.75\nvt 0.1 0.2 0.3\n"))
	require.NoError(t, err)
	require.Len(t, doc.TexCoords, 2)
	assert.Equal(t, math.Vec3{X: 0.25, Y: 0.75, Z: 0}, doc.TexCoords[0])
	assert.Equal(t, float32(0.3), doc.TexCoords[1].Z)

	_, err = ParseOBJ([]byte("vt 0.5\n"))
	assert.ErrorIs(t, err, ErrUnsupportedArity)
}

func TestParseOBJ_Groups(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
g
f 1 2 3
g named extra tokens
usemtl Stone
f 3 2 1
o Object
`
	doc, err := ParseOBJ([]byte(src))
	require.NoError(t, err)

	require.Len(t, doc.Groups, 4)
	assert.Equal(t, "default", doc.Groups[0].Name)
	assert.Equal(t, "default", doc.Groups[1].Name)
	assert.Equal(t, "named", doc.Groups[2].Name)
	assert.Equal(t, "Stone", doc.Groups[2].Material)
	assert.Equal(t, "Object", doc.Groups[3].Name)
	assert.Empty(t, doc.Groups[3].Faces)
}

func TestParseOBJ_IgnoresUnknownAndComments(t *testing.T) {
	src := "#comment without space\n# normal comment\nvp 0.1 0.2\nl 1 2\ncstype bezier\n\n   \nv 1 2 3\n"
	doc, err := ParseOBJ([]byte(src))
	require.NoError(t, err)
	assert.Len(t, doc.Vertices, 1)
	assert.Empty(t, doc.Groups)
}

func TestParseOBJ_CommaAndRepeatedDelimiters(t *testing.T) {
	doc, err := ParseOBJ([]byte("v 1.0,  2.0\t3.0\n"))
	require.NoError(t, err)
	assert.Equal(t, math.Vec3{X: 1, Y: 2, Z: 3}, doc.Vertices[0])
}

func TestParseOBJ_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
		line    int
	}{
		{"non-numeric vertex", "v 1.0 abc 2.0\n", ErrMalformedNumber, 1},
		{"short vertex", "v 1 2\n", ErrUnsupportedArity, 1},
		{"long vertex", "v 1 2 3 4\n", ErrUnsupportedArity, 1},
		{"short normal", "v 0 0 0\nvn 0 1\n", ErrUnsupportedArity, 2},
		{"bad normal", "vn 0 x 1\n", ErrMalformedNumber, 1},
		{"long texcoord", "vt 1 2 3 4\n", ErrUnsupportedArity, 1},
		{"bad face vertex", "f a 2 3\n", ErrMalformedNumber, 1},
		{"too many face components", "f 1/1/1/1 2 3\n", ErrUnsupportedArity, 1},
		{"two corner face", "f 1 2\n", ErrUnsupportedArity, 1},
		{"usemtl before group", "mtllib a.mtl\nusemtl Red\n", ErrMissingContext, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseOBJ([]byte(tt.src))
			assert.Nil(t, doc)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.line, perr.Line)
		})
	}
}

func TestParseOBJ_MalformedNumberKeepsText(t *testing.T) {
	_, err := ParseOBJ([]byte("v 0 0 0\nv 1.0 abc 2.0\n"))
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
	assert.Equal(t, "v 1.0 abc 2.0", perr.Text)
	assert.Contains(t, err.Error(), `"abc"`)
}

func TestParseFaceItem(t *testing.T) {
	tests := []struct {
		field string
		want  FaceItem
	}{
		{"7", FaceItem{Vertex: 7}},
		{"7/3", FaceItem{Vertex: 7, TexCoord: 3, HasTexCoord: true}},
		{"7/3/2", FaceItem{Vertex: 7, TexCoord: 3, Normal: 2, HasTexCoord: true, HasNormal: true}},
		{"5//2", FaceItem{Vertex: 5, Normal: 2, HasNormal: true}},
		{"5/x/2", FaceItem{Vertex: 5, Normal: 2, HasNormal: true}},
		{"5/3/", FaceItem{Vertex: 5, TexCoord: 3, HasTexCoord: true}},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got, err := ParseFaceItem(tt.field)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOBJFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.obj")
	require.NoError(t, os.WriteFile(path, []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0644))

	doc, err := ParseOBJFile(path)
	require.NoError(t, err)
	assert.Len(t, doc.Vertices, 3)

	_, err = ParseOBJFile(filepath.Join(t.TempDir(), "missing.obj"))
	assert.ErrorIs(t, err, ErrIO)
}
