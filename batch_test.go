package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kundajelab/chrombench/core"
)

const batchManifest = `{
	"jobs": [
		{"model": "m1", "variants_bed": "v.bed", "counts_tsv": "c.tsv",
		 "genome": "g.fa", "cell_type": "GM12878"},
		{"label": "summary", "model": "m1", "variants_bed": "v.bed",
		 "counts_tsv": "c.tsv", "genome": "g.fa", "cell_type": "all",
		 "depends_on": ["variantscoring.m1.GM12878"]}
	]
}`

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	ferr := fn()
	w.Close()
	os.Stdout = old
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out), ferr
}

func TestBatchDryRunDependencyLabels(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(core.ConfigEnv, filepath.Join(dir, "config.json"))
	manifest := filepath.Join(dir, "manifest.json")
	require.NoError(t, os.WriteFile(manifest, []byte(batchManifest), 0644))

	cmd := BatchCommand{Cluster: "default", DryRun: true}
	cmd.Args.Manifest = manifest

	out, err := captureStdout(t, func() error { return cmd.Execute(nil) })
	require.NoError(t, err)
	assert.Contains(t, out, "--dependency=afterok:variantscoring.m1.GM12878")
	assert.NotContains(t, out, "afterok:0")
}
