package core_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kundajelab/chrombench/core"
)

func testJob() core.ScoringJob {
	return core.ScoringJob{
		Model:       "m1",
		VariantsBed: "v.bed",
		CountsTSV:   "c.tsv",
		Genome:      "g.fa",
		CellType:    "GM12878",
	}
}

func TestJobName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "variantscoring.m1.GM12878", testJob().Name())
}

func TestJobLogPaths(t *testing.T) {
	t.Parallel()

	job := testJob()
	assert.Equal(t, "m1.GM12878.vscoring.log.o", job.OutputLog())
	assert.Equal(t, "m1.GM12878.vscoring.log.e", job.ErrorLog())
}

func TestJobArgsOrder(t *testing.T) {
	t.Parallel()

	want := []string{"m1", "v.bed", "c.tsv", "g.fa", "GM12878"}
	assert.Equal(t, want, testJob().Args())
}

func TestJobEmptyFieldsPropagate(t *testing.T) {
	t.Parallel()

	job := core.ScoringJob{}
	assert.Equal(t, "variantscoring..", job.Name())
	assert.Equal(t, "..vscoring.log.o", job.OutputLog())
	assert.Equal(t, "..vscoring.log.e", job.ErrorLog())
	assert.Equal(t, []string{"", "", "", "", ""}, job.Args())
}

func TestJobValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, testJob().Validate())

	job := testJob()
	job.Genome = ""
	require.Error(t, job.Validate())
}

func TestJobCheckPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	job := testJob()
	job.VariantsBed = filepath.Join(dir, "v.bed")
	job.CountsTSV = filepath.Join(dir, "c.tsv")
	job.Genome = filepath.Join(dir, "g.fa")
	require.Error(t, job.CheckPaths())

	for _, path := range []string{job.VariantsBed, job.CountsTSV, job.Genome} {
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}
	require.NoError(t, job.CheckPaths())
}
