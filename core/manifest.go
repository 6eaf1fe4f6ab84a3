package core

import (
	"encoding/json"
	"io/ioutil"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
)

// ManifestEntry is one scoring job in a batch manifest. Label defaults to
// the derived job name; DependsOn lists the labels of jobs that must finish
// successfully first.
type ManifestEntry struct {
	ScoringJob
	Label     string   `json:"label,omitempty"`
	DependsOn []string `json:"depends_on,omitempty"`
}

// Key returns the label used for dependency references.
func (e ManifestEntry) Key() string {
	if len(e.Label) > 0 {
		return e.Label
	}
	return e.Name()
}

// Manifest describes a batch of scoring jobs submitted together, fanning
// one experiment over several model and cell-type combinations.
type Manifest struct {
	MaxConcurrent int             `json:"max_concurrent,omitempty"`
	Jobs          []ManifestEntry `json:"jobs"`
}

// LoadManifest reads and validates a JSON manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "manifest: read")
	}
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, "manifest: decode")
	}
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return &manifest, nil
}

func (m *Manifest) validate() error {
	if len(m.Jobs) == 0 {
		return errors.New("manifest: no jobs")
	}
	seen := make(map[string]bool)
	for _, entry := range m.Jobs {
		if err := entry.Validate(); err != nil {
			return errors.Wrap(err, "manifest")
		}
		key := entry.Key()
		if seen[key] {
			return errors.Errorf("manifest: duplicate job %q", key)
		}
		seen[key] = true
	}
	for _, entry := range m.Jobs {
		for _, dep := range entry.DependsOn {
			if !seen[dep] {
				return errors.Errorf("manifest: %q depends on unknown job %q",
					entry.Key(), dep)
			}
		}
	}
	// edge insertion rejects cycles
	_, err := m.Graph()
	return err
}

// Graph builds the dependency DAG with edges from prerequisite to dependent.
func (m *Manifest) Graph() (graph.Graph[string, string], error) {
	g := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())
	for _, entry := range m.Jobs {
		if err := g.AddVertex(entry.Key()); err != nil {
			return nil, errors.Wrapf(err, "manifest: add %q", entry.Key())
		}
	}
	for _, entry := range m.Jobs {
		for _, dep := range entry.DependsOn {
			if err := g.AddEdge(dep, entry.Key()); err != nil {
				return nil, errors.Wrapf(err, "manifest: %q after %q",
					entry.Key(), dep)
			}
		}
	}
	return g, nil
}

// Waves groups the jobs into submission rounds. Every job lands one round
// after its deepest prerequisite, so each round only references job ids
// from earlier rounds.
func (m *Manifest) Waves() ([][]ManifestEntry, error) {
	g, err := m.Graph()
	if err != nil {
		return nil, err
	}
	order, err := graph.TopologicalSort(g)
	if err != nil {
		return nil, errors.Wrap(err, "manifest: sort")
	}
	entries := make(map[string]ManifestEntry, len(m.Jobs))
	for _, entry := range m.Jobs {
		entries[entry.Key()] = entry
	}
	depth := make(map[string]int, len(order))
	maxDepth := 0
	for _, key := range order {
		d := 0
		for _, dep := range entries[key].DependsOn {
			if depth[dep]+1 > d {
				d = depth[dep] + 1
			}
		}
		depth[key] = d
		if d > maxDepth {
			maxDepth = d
		}
	}
	waves := make([][]ManifestEntry, maxDepth+1)
	for _, key := range order {
		waves[depth[key]] = append(waves[depth[key]], entries[key])
	}
	return waves, nil
}
