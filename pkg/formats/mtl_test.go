package formats

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-obj/pkg/math"
)

const sampleMTL = `# two materials
newmtl Red
Ns 96.078431
Ka 1.000000 1.000000 1.000000
Kd 0.640000 0.000000 0.000000
Ks 0.500000 0.500000 0.500000
Ke 0 0 0
Ni 1.000000
d 0.5
illum 2
map_Kd textures/red brick.png

newmtl Plain
Kd 0.8 0.8 0.8`

func TestParseMTL(t *testing.T) {
	mats, err := ParseMTL([]byte(sampleMTL))
	require.NoError(t, err)
	require.Len(t, mats, 2)

	red := mats[0]
	assert.Equal(t, "Red", red.Name)
	require.NotNil(t, red.Ns)
	assert.InDelta(t, 96.078431, *red.Ns, 1e-4)
	require.NotNil(t, red.Ka)
	assert.Equal(t, math.Vec3{X: 1, Y: 1, Z: 1}, *red.Ka)
	require.NotNil(t, red.Kd)
	assert.InDelta(t, 0.64, red.Kd.X, 1e-6)
	require.NotNil(t, red.Ks)
	require.NotNil(t, red.Ni)
	assert.Equal(t, float32(1), *red.Ni)
	require.NotNil(t, red.D)
	assert.Equal(t, float32(0.5), *red.D)
	require.NotNil(t, red.Illum)
	assert.Equal(t, 2, *red.Illum)
	assert.Equal(t, "textures/red brick.png", red.MapKd)

	plain := mats[1]
	assert.Equal(t, "Plain", plain.Name)
	assert.Nil(t, plain.Ns)
	assert.Nil(t, plain.Ka)
	assert.Nil(t, plain.Illum)
	assert.Empty(t, plain.MapKd)
	require.NotNil(t, plain.Kd)

	assert.Same(t, &mats[1], FindMaterial(mats, "Plain"))
	assert.Nil(t, FindMaterial(mats, "Missing"))
}

func TestParseMTL_LaterDirectiveOverwrites(t *testing.T) {
	mats, err := ParseMTL([]byte("newmtl A\nd 0.2\nd 0.9\n"))
	require.NoError(t, err)
	require.Len(t, mats, 1)
	assert.Equal(t, float32(0.9), *mats[0].D)
}

func TestParseMTL_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{"field before newmtl", "Kd 1 1 1\nnewmtl A\n", ErrMissingContext},
		{"map before newmtl", "map_Kd a.png\n", ErrMissingContext},
		{"bad color", "newmtl A\nKd 1 red 1\n", ErrMalformedNumber},
		{"short color", "newmtl A\nKa 1 1\n", ErrUnsupportedArity},
		{"bad exponent", "newmtl A\nNs high\n", ErrMalformedNumber},
		{"bad illum", "newmtl A\nillum 2.5\n", ErrMalformedNumber},
		{"empty illum", "newmtl A\nillum\n", ErrUnsupportedArity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mats, err := ParseMTL([]byte(tt.src))
			assert.Nil(t, mats)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseMTL_IgnoresUnknownBeforeNewmtl(t *testing.T) {
	mats, err := ParseMTL([]byte("Ke 1 1 1\nnewmtl A\n"))
	require.NoError(t, err)
	assert.Len(t, mats, 1)
}

func TestParseMTLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.mtl")
	require.NoError(t, os.WriteFile(path, []byte(sampleMTL), 0644))

	mats, err := ParseMTLFile(path)
	require.NoError(t, err)
	assert.Len(t, mats, 2)

	_, err = ParseMTLFile(filepath.Join(t.TempDir(), "nope.mtl"))
	assert.ErrorIs(t, err, ErrIO)
}
