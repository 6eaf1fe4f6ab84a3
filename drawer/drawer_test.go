package drawer_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kundajelab/chrombench/drawer"
)

func TestDraw(t *testing.T) {
	t.Parallel()

	d := drawer.New()
	require.NoError(t, d.AddJob("variantscoring.m1.GM12878", 0, 1))
	require.NoError(t, d.AddJob("variantscoring.m1.K562", 0, 1))
	require.NoError(t, d.AddJob("summary", 1, 1))
	require.NoError(t, d.AddDependency("variantscoring.m1.GM12878", "summary"))
	require.NoError(t, d.AddDependency("variantscoring.m1.K562", "summary"))

	var buf bytes.Buffer
	require.NoError(t, d.Draw(&buf))

	out := buf.String()
	assert.Contains(t, out, "strict digraph {")
	assert.Contains(t, out, `"variantscoring.m1.GM12878" -> "summary";`)
	assert.Contains(t, out, `"variantscoring.m1.K562" -> "summary";`)
	assert.Contains(t, out, `fillcolor="#0000f0"`)
	assert.Contains(t, out, `fillcolor="#f00000"`)
}

func TestDrawSingleWave(t *testing.T) {
	t.Parallel()

	d := drawer.New()
	require.NoError(t, d.AddJob("variantscoring.m1.GM12878", 0, 0))

	var buf bytes.Buffer
	require.NoError(t, d.Draw(&buf))
	assert.Contains(t, buf.String(), `fillcolor="#0000f0"`)
}

func TestAddDependencyCycle(t *testing.T) {
	t.Parallel()

	d := drawer.New()
	require.NoError(t, d.AddJob("a", 0, 0))
	require.NoError(t, d.AddJob("b", 0, 0))
	require.NoError(t, d.AddDependency("a", "b"))
	assert.Error(t, d.AddDependency("b", "a"))
}
