// Package drawer renders a batch submission plan as a Graphviz digraph,
// one vertex per scoring job, shaded by submission wave.
package drawer

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	colors "gopkg.in/go-playground/colors.v1"
)

const maxRGB = 240

type Drawer struct {
	graph graph.Graph[string, string]
}

func New() *Drawer {
	return &Drawer{
		graph: graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles()),
	}
}

// AddJob adds one job vertex. Shading runs blue for the first wave to red
// for the last.
func (d *Drawer) AddJob(label string, wave, lastWave int) error {
	hex, err := waveColor(wave, lastWave)
	if err != nil {
		return err
	}
	err = d.graph.AddVertex(label,
		graph.VertexAttribute("style", "filled"),
		graph.VertexAttribute("fillcolor", hex),
		graph.VertexAttribute("fontcolor", "white"),
	)
	return errors.Wrapf(err, "unable to add vertex %s", label)
}

// AddDependency links a prerequisite job to a dependent one.
func (d *Drawer) AddDependency(parent, child string) error {
	err := d.graph.AddEdge(parent, child)
	return errors.Wrapf(err, "unable to add edge from %s to %s", parent, child)
}

func waveColor(wave, lastWave int) (string, error) {
	fraction := 0.0
	if lastWave > 0 {
		fraction = float64(wave) / float64(lastWave)
	}
	red := uint8(maxRGB * fraction)
	blue := uint8(maxRGB * (1 - fraction))
	c, err := colors.RGB(red, 0, blue)
	if err != nil {
		return "", errors.Wrap(err, "unable to get colour")
	}
	return c.ToHEX().String(), nil
}

const dotTemplate = `strict digraph {
{{- range .Statements}}
	"{{.Source}}"{{if .Target}} -> "{{.Target}}"{{else}} [ {{.Attributes}} ]{{end}};
{{- end}}
}
`

type statement struct {
	Source     string
	Target     string
	Attributes string
}

func attributeList(attributes map[string]string) string {
	keys := make([]string, 0, len(attributes))
	for key := range attributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, key := range keys {
		pairs[i] = fmt.Sprintf("%s=%q", key, attributes[key])
	}
	return strings.Join(pairs, ", ")
}

// Draw writes the plan in DOT format. Output is deterministic: vertices and
// edges are emitted in sorted order.
func (d *Drawer) Draw(wrt io.Writer) error {
	adjacency, err := d.graph.AdjacencyMap()
	if err != nil {
		return errors.Wrap(err, "unable to read graph")
	}
	vertices := make([]string, 0, len(adjacency))
	for vertex := range adjacency {
		vertices = append(vertices, vertex)
	}
	sort.Strings(vertices)

	var statements []statement
	for _, vertex := range vertices {
		_, properties, err := d.graph.VertexWithProperties(vertex)
		if err != nil {
			return errors.Wrap(err, "unable to get vertex properties")
		}
		statements = append(statements, statement{
			Source:     vertex,
			Attributes: attributeList(properties.Attributes),
		})
		targets := make([]string, 0, len(adjacency[vertex]))
		for target := range adjacency[vertex] {
			targets = append(targets, target)
		}
		sort.Strings(targets)
		for _, target := range targets {
			statements = append(statements, statement{Source: vertex, Target: target})
		}
	}

	tmpl, err := template.New("dot").Parse(dotTemplate)
	if err != nil {
		return errors.Wrap(err, "unable to parse template")
	}
	err = tmpl.Execute(wrt, struct{ Statements []statement }{statements})
	return errors.Wrap(err, "unable to render graph")
}

// DrawFile renders the plan into a .gv file.
func (d *Drawer) DrawFile(name string) error {
	file, err := os.Create(name)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", name)
	}
	defer file.Close()
	return d.Draw(file)
}
