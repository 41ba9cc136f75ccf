// Package wavefront loads Wavefront OBJ models and their MTL material libraries
// into renderer-ready meshes.
package wavefront

import (
	"errors"
	"fmt"
	"path"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-obj/internal/assets"
	"github.com/Faultbox/midgard-obj/pkg/formats"
	"github.com/Faultbox/midgard-obj/pkg/mesh"
)

// Source returns the contents of a named asset.
type Source interface {
	ReadFile(name string) ([]byte, error)
}

// Options controls how models are assembled.
type Options struct {
	Build mesh.BuildOptions
	// LoadMaterials pairs a model with the materials of its mtllib.
	LoadMaterials bool
}

// DefaultOptions returns the options used by ParseWavefront.
func DefaultOptions() Options {
	return Options{LoadMaterials: true}
}

// Loader parses models from a Source. It holds no per-parse state, so one
// Loader may serve concurrent loads.
type Loader struct {
	src  Source
	opts Options
	log  *zap.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger. The default discards output.
func WithLogger(log *zap.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// WithOptions replaces the assembly options.
func WithOptions(opts Options) Option {
	return func(l *Loader) {
		l.opts = opts
	}
}

// NewLoader creates a loader reading from src.
func NewLoader(src Source, opts ...Option) *Loader {
	l := &Loader{
		src:  src,
		opts: DefaultOptions(),
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads and assembles the named OBJ model. When the model declares an
// mtllib and LoadMaterials is set, its materials are attached to the model.
func (l *Loader) Load(name string) (*mesh.Model, error) {
	start := time.Now()

	doc, err := l.Document(name)
	if err != nil {
		return nil, err
	}

	model, err := mesh.Build(name, doc, l.opts.Build)
	if err != nil {
		return nil, fmt.Errorf("assembling %s: %w", name, err)
	}

	if l.opts.LoadMaterials && doc.MtlLib != "" {
		mats, err := l.Materials(name, doc.MtlLib)
		if err != nil {
			return nil, err
		}
		model.Materials = mats
	}

	l.log.Debug("loaded model",
		zap.String("name", name),
		zap.Int("vertices", len(model.Vertices)),
		zap.Int("triangles", model.TriangleCount()),
		zap.Int("groups", len(model.Groups)),
		zap.Int("materials", len(model.Materials)),
		zap.Bool("synthesized_normals", model.SynthesizedNormals),
		zap.Duration("took", time.Since(start)),
	)
	return model, nil
}

// Document reads and parses the named OBJ file without assembling it.
func (l *Loader) Document(name string) (*formats.Document, error) {
	data, err := l.src.ReadFile(name)
	if err != nil {
		return nil, ioError(err)
	}

	doc, err := formats.ParseOBJ(data)
	if err != nil {
		l.log.Warn("parse failed", zap.String("name", name), zap.Error(err))
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}

	l.log.Debug("parsed document",
		zap.String("name", name),
		zap.Int("vertices", len(doc.Vertices)),
		zap.Int("normals", len(doc.Normals)),
		zap.Int("texcoords", len(doc.TexCoords)),
		zap.Int("groups", len(doc.Groups)),
		zap.Int("faces", doc.FaceCount()),
	)
	return doc, nil
}

// Materials reads the material library mtlPath, resolved against the
// directory of objName rather than the working directory.
func (l *Loader) Materials(objName, mtlPath string) ([]formats.Material, error) {
	name := MaterialPath(objName, mtlPath)

	data, err := l.src.ReadFile(name)
	if err != nil {
		return nil, ioError(err)
	}

	mats, err := formats.ParseMTL(data)
	if err != nil {
		l.log.Warn("material parse failed", zap.String("name", name), zap.Error(err))
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}

	l.log.Debug("parsed materials", zap.String("name", name), zap.Int("count", len(mats)))
	return mats, nil
}

// MaterialPath resolves an mtllib path against the directory of the OBJ file.
func MaterialPath(objName, mtlPath string) string {
	if path.IsAbs(mtlPath) {
		return mtlPath
	}
	return path.Join(path.Dir(objName), mtlPath)
}

// ParseWavefront reads assets/{fileName} and returns the assembled model.
func ParseWavefront(fileName string) (*mesh.Model, error) {
	return NewLoader(assets.NewManager(assets.DefaultRoot)).Load(fileName)
}

// ParseMTL reads the material library mtlRelativePath, relative to the
// directory containing objFileName, from the assets directory.
func ParseMTL(objFileName, mtlRelativePath string) ([]formats.Material, error) {
	return NewLoader(assets.NewManager(assets.DefaultRoot)).Materials(objFileName, mtlRelativePath)
}

// ioError makes sure a Source failure carries formats.ErrIO.
func ioError(err error) error {
	if !errors.Is(err, formats.ErrIO) {
		err = fmt.Errorf("%w: %w", formats.ErrIO, err)
	}
	return &formats.ParseError{Err: err}
}
