package slurm_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kundajelab/chrombench/core"
	"github.com/kundajelab/chrombench/slurm"
)

// fakeRunner records invocations and plays back scripted results.
type fakeRunner struct {
	names   []string
	args    [][]string
	outputs []string
	errs    []error
}

func (f *fakeRunner) Run(name string, args ...string) ([]byte, error) {
	call := len(f.names)
	f.names = append(f.names, name)
	f.args = append(f.args, args)
	var out string
	var err error
	if call < len(f.outputs) {
		out = f.outputs[call]
	}
	if call < len(f.errs) {
		err = f.errs[call]
	}
	return []byte(out), err
}

func testJob() core.ScoringJob {
	return core.ScoringJob{
		Model:       "m1",
		VariantsBed: "v.bed",
		CountsTSV:   "c.tsv",
		Genome:      "g.fa",
		CellType:    "GM12878",
	}
}

func defaultOptions() slurm.Options {
	return slurm.OptionsFromCluster(core.DefaultCluster())
}

func TestBuildArgs(t *testing.T) {
	t.Parallel()

	want := []string{
		"--export=ALL",
		"--requeue",
		"--job-name=variantscoring.m1.GM12878",
		"-p", "akundaje,gpu,owners",
		"-t", "24:00:00",
		"-G", "1",
		"-C", "GPU_MEM:24GB|GPU_MEM:32GB|GPU_MEM:40GB|GPU_MEM:80GB|" +
			"GPU_SKU:A100_SXM4|GPU_SKU:A100_PCIE|GPU_SKU:V100_SXM2|" +
			"GPU_SKU:V100_PCIE|GPU_SKU:TITAN_V",
		"--mem=60G",
		"-o", "m1.GM12878.vscoring.log.o",
		"-e", "m1.GM12878.vscoring.log.e",
		"run_probed_variant_scoring.sh",
		"m1", "v.bed", "c.tsv", "g.fa", "GM12878",
	}
	assert.Equal(t, want, slurm.BuildArgs(testJob(), defaultOptions()))
}

func TestBuildArgsFixedFlagsAcrossJobs(t *testing.T) {
	t.Parallel()

	other := core.ScoringJob{
		Model:       "chrombpnet",
		VariantsBed: "Afr.CaQTLS.tsv",
		CountsTSV:   "counts.tsv",
		Genome:      "GRCh38.fasta",
		CellType:    "K562",
	}
	first := slurm.BuildArgs(testJob(), defaultOptions())
	second := slurm.BuildArgs(other, defaultOptions())

	// resource request is position-for-position identical
	resource := func(args []string) []string {
		var kept []string
		for i := 0; i < len(args); i++ {
			switch args[i] {
			case "-p", "-t", "-G", "-C":
				kept = append(kept, args[i], args[i+1])
				i++
			default:
				if args[i] == "--export=ALL" || args[i] == "--requeue" ||
					len(args[i]) > 6 && args[i][:6] == "--mem=" {
					kept = append(kept, args[i])
				}
			}
		}
		return kept
	}
	assert.Equal(t, resource(first), resource(second))
}

func TestBuildArgsEmptyInputs(t *testing.T) {
	t.Parallel()

	args := slurm.BuildArgs(core.ScoringJob{}, defaultOptions())
	assert.Contains(t, args, "--job-name=variantscoring..")
	assert.Equal(t, []string{"", "", "", "", ""}, args[len(args)-5:])
}

func TestBuildArgsDependency(t *testing.T) {
	t.Parallel()

	opts := defaultOptions()
	opts.Dependency = []string{"41", "42"}
	assert.Contains(t, slurm.BuildArgs(testJob(), opts), "--dependency=afterok:41:42")

	// previews reference jobs by label before ids exist
	opts.Dependency = []string{"variantscoring.m1.GM12878"}
	assert.Contains(t, slurm.BuildArgs(testJob(), opts),
		"--dependency=afterok:variantscoring.m1.GM12878")
}

func TestParseJobID(t *testing.T) {
	t.Parallel()

	id, err := slurm.ParseJobID("Submitted batch job 123456\n")
	require.NoError(t, err)
	assert.Equal(t, 123456, id)

	_, err = slurm.ParseJobID("sbatch: error: invalid partition\n")
	require.Error(t, err)
}

func TestSubmit(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{outputs: []string{"Submitted batch job 77\n"}}
	submitter := &slurm.Submitter{Sbatch: "sbatch", Runner: runner}

	id, err := submitter.Submit(testJob(), defaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 77, id)
	require.Len(t, runner.args, 1)
	assert.Equal(t, "sbatch", runner.names[0])
	assert.Equal(t, slurm.BuildArgs(testJob(), defaultOptions()), runner.args[0])
}

func TestSubmitRetries(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{
		outputs: []string{"", "Submitted batch job 9\n"},
		errs:    []error{errors.New("socket timed out"), nil},
	}
	submitter := &slurm.Submitter{Sbatch: "sbatch", Runner: runner}

	opts := defaultOptions()
	opts.Retries = 1
	id, err := submitter.Submit(testJob(), opts)
	require.NoError(t, err)
	assert.Equal(t, 9, id)
	assert.Len(t, runner.args, 2)
}

func TestSubmitFailure(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{
		outputs: []string{"sbatch: error: Batch job submission failed\n"},
		errs:    []error{errors.New("exit status 1")},
	}
	submitter := &slurm.Submitter{Sbatch: "sbatch", Runner: runner}

	_, err := submitter.Submit(testJob(), defaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "submission failed")
	assert.Len(t, runner.args, 1)
}
