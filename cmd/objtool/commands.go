package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-obj/internal/config"
	"github.com/Faultbox/midgard-obj/pkg/formats"
	"github.com/Faultbox/midgard-obj/pkg/math"
	"github.com/Faultbox/midgard-obj/pkg/mesh"
	"github.com/Faultbox/midgard-obj/pkg/wavefront"
)

func loaderOptions(cfg *config.Config) wavefront.Options {
	return wavefront.Options{
		Build:         mesh.BuildOptions{NormalizeNormals: cfg.Mesh.NormalizeNormals},
		LoadMaterials: cfg.Mesh.LoadMaterials,
	}
}

func modelArg(command string, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: objtool %s <model.obj>", command)
	}
	return args[0], nil
}

func (a *app) cmdInfo(args []string) error {
	name, err := modelArg("info", args)
	if err != nil {
		return err
	}

	doc, err := a.loader.Document(name)
	if err != nil {
		return err
	}
	m, err := a.loader.Load(name)
	if err != nil {
		return err
	}

	w := os.Stdout
	fmt.Fprintf(w, "Model:      %s\n", a.assets.Path(name))
	fmt.Fprintf(w, "Vertices:   %d (pool)  %d (flattened)\n", len(doc.Vertices), len(m.Vertices))
	fmt.Fprintf(w, "Normals:    %d", len(doc.Normals))
	if m.SynthesizedNormals {
		fmt.Fprint(w, " (synthesized)")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "TexCoords:  %d\n", len(doc.TexCoords))
	fmt.Fprintf(w, "Groups:     %d\n", len(m.Groups))
	fmt.Fprintf(w, "Faces:      %d\n", doc.FaceCount())
	fmt.Fprintf(w, "Triangles:  %d\n", m.TriangleCount())
	if doc.MtlLib != "" {
		fmt.Fprintf(w, "Materials:  %d (%s)\n", len(m.Materials), doc.MtlLib)
	}
	fmt.Fprintf(w, "Bounds:     %v - %v\n", m.Bounds.Min, m.Bounds.Max)
	fmt.Fprintf(w, "Size:       %v\n", m.Bounds.Size())
	return nil
}

func (a *app) cmdGroups(args []string) error {
	name, err := modelArg("groups", args)
	if err != nil {
		return err
	}
	m, err := a.loader.Load(name)
	if err != nil {
		return err
	}
	printGroups(os.Stdout, m)
	return nil
}

func printGroups(out io.Writer, m *mesh.Model) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "GROUP\tMATERIAL\tSTART\tINDICES\tTRIANGLES")
	for _, g := range m.Groups {
		mat := g.Material
		if mat == "" {
			mat = "-"
		} else if len(m.Materials) > 0 && m.Material(g) == nil {
			mat += " (missing)"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n", g.Name, mat, g.StartIndex, g.IndexCount, g.IndexCount/3)
	}
	w.Flush()
}

func (a *app) cmdMaterials(args []string) error {
	name, err := modelArg("materials", args)
	if err != nil {
		return err
	}
	doc, err := a.loader.Document(name)
	if err != nil {
		return err
	}
	if doc.MtlLib == "" {
		fmt.Fprintln(os.Stderr, "Model declares no mtllib")
		return nil
	}

	mats, err := a.loader.Materials(name, doc.MtlLib)
	if err != nil {
		return err
	}

	summaries := make([]materialSummary, 0, len(mats))
	for _, mat := range mats {
		summaries = append(summaries, summarizeMaterial(mat))
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Name < summaries[j].Name })

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MATERIAL\tDIFFUSE\tALPHA\tILLUM\tMAP_KD")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.Name, orDash(s.Diffuse), orDash(s.Alpha), orDash(s.Illum), orDash(s.MapKd))
	}
	w.Flush()
	fmt.Fprintf(os.Stderr, "\n(%d materials in %s)\n", len(mats), wavefront.MaterialPath(name, doc.MtlLib))
	return nil
}

func (a *app) cmdDump(args []string) error {
	name, err := modelArg("dump", args)
	if err != nil {
		return err
	}
	m, err := a.loader.Load(name)
	if err != nil {
		return err
	}
	return writeSummary(os.Stdout, m)
}

func (a *app) cmdConfig(args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("usage: objtool config [save|<path>]")
	}
	if len(args) == 0 {
		data, err := yaml.Marshal(a.cfg)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	path := args[0]
	if path == "save" {
		var err error
		if path, err = a.cfg.Save(); err != nil {
			return err
		}
	} else if err := a.cfg.SaveTo(path); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
	return nil
}

// modelSummary is the YAML shape printed by dump.
type modelSummary struct {
	Name               string            `yaml:"name"`
	Vertices           int               `yaml:"vertices"`
	Triangles          int               `yaml:"triangles"`
	SynthesizedNormals bool              `yaml:"synthesized_normals"`
	Bounds             boundsSummary     `yaml:"bounds"`
	Groups             []groupSummary    `yaml:"groups"`
	Materials          []materialSummary `yaml:"materials,omitempty"`
}

type boundsSummary struct {
	Min [3]float32 `yaml:"min,flow"`
	Max [3]float32 `yaml:"max,flow"`
}

type groupSummary struct {
	Name       string `yaml:"name"`
	Material   string `yaml:"material,omitempty"`
	StartIndex int    `yaml:"start_index"`
	IndexCount int    `yaml:"index_count"`
}

type materialSummary struct {
	Name    string `yaml:"name"`
	Diffuse string `yaml:"diffuse,omitempty"`
	Alpha   string `yaml:"alpha,omitempty"`
	Illum   string `yaml:"illum,omitempty"`
	MapKd   string `yaml:"map_kd,omitempty"`
}

func summarize(m *mesh.Model) modelSummary {
	s := modelSummary{
		Name:               m.Name,
		Vertices:           len(m.Vertices),
		Triangles:          m.TriangleCount(),
		SynthesizedNormals: m.SynthesizedNormals,
		Bounds: boundsSummary{
			Min: toArray(m.Bounds.Min),
			Max: toArray(m.Bounds.Max),
		},
	}
	for _, g := range m.Groups {
		s.Groups = append(s.Groups, groupSummary{
			Name:       g.Name,
			Material:   g.Material,
			StartIndex: g.StartIndex,
			IndexCount: g.IndexCount,
		})
	}
	for _, mat := range m.Materials {
		s.Materials = append(s.Materials, summarizeMaterial(mat))
	}
	return s
}

func summarizeMaterial(mat formats.Material) materialSummary {
	s := materialSummary{Name: mat.Name, MapKd: mat.MapKd}
	if mat.Kd != nil {
		s.Diffuse = mat.Kd.String()
	}
	if mat.D != nil {
		s.Alpha = fmt.Sprintf("%g", *mat.D)
	}
	if mat.Illum != nil {
		s.Illum = fmt.Sprintf("%d", *mat.Illum)
	}
	return s
}

func writeSummary(w io.Writer, m *mesh.Model) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(summarize(m)); err != nil {
		return err
	}
	return enc.Close()
}

func toArray(v math.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
