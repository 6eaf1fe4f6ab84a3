package slurm

import (
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/kundajelab/chrombench/core"
	"github.com/kundajelab/chrombench/logger"
)

// Runner executes a scheduler binary and returns its combined output. The
// production runner shells out; tests substitute a fake.
type Runner interface {
	Run(name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

// Options is the resource request attached to a submission. The zero value
// is not useful; build one with OptionsFromCluster.
type Options struct {
	Partitions  []string
	TimeLimit   string
	GPUs        int
	Constraints []string
	Memory      string
	Requeue     bool
	ExportEnv   string
	Script      string
	// job ids, or manifest labels when previewing
	Dependency []string
	Retries    int
}

// OptionsFromCluster maps cluster defaults onto a submission request.
// Environment forwarding and requeue-on-preemption are always on.
func OptionsFromCluster(c core.Cluster) Options {
	return Options{
		Partitions:  c.Partitions,
		TimeLimit:   c.TimeLimit,
		GPUs:        c.GPUs,
		Constraints: c.Constraints,
		Memory:      c.Memory,
		Requeue:     true,
		ExportEnv:   "ALL",
		Script:      c.Script,
	}
}

// BuildArgs composes the sbatch argument vector for one scoring job. The
// resource request is independent of the job; only the job name, the log
// paths, and the trailing delegate arguments vary.
func BuildArgs(job core.ScoringJob, opts Options) []string {
	args := []string{"--export=" + opts.ExportEnv}
	if opts.Requeue {
		args = append(args, "--requeue")
	}
	args = append(args,
		"--job-name="+job.Name(),
		"-p", strings.Join(opts.Partitions, ","),
		"-t", opts.TimeLimit,
		"-G", strconv.Itoa(opts.GPUs),
		"-C", strings.Join(opts.Constraints, "|"),
		"--mem="+opts.Memory,
		"-o", job.OutputLog(),
		"-e", job.ErrorLog(),
	)
	if len(opts.Dependency) > 0 {
		args = append(args, "--dependency=afterok:"+strings.Join(opts.Dependency, ":"))
	}
	args = append(args, opts.Script)
	return append(args, job.Args()...)
}

// Submitter queues scoring jobs through the sbatch binary.
type Submitter struct {
	Sbatch string
	Runner Runner
}

func NewSubmitter(c core.Cluster) *Submitter {
	return &Submitter{Sbatch: c.Sbatch, Runner: execRunner{}}
}

var jobIDRe = regexp.MustCompile(`Submitted batch job (\d+)`)

// ParseJobID extracts the numeric job id from sbatch output.
func ParseJobID(out string) (int, error) {
	match := jobIDRe.FindStringSubmatch(out)
	if match == nil {
		return 0, errors.Errorf("sbatch: no job id in %q", strings.TrimSpace(out))
	}
	id, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, errors.Wrap(err, "sbatch: job id")
	}
	return id, nil
}

// Submit queues one job and returns its id. A failed sbatch call is retried
// up to opts.Retries times with a one second pause.
func (s *Submitter) Submit(job core.ScoringJob, opts Options) (int, error) {
	args := BuildArgs(job, opts)
	logger.DebugPrintf("%s %s", s.Sbatch, strings.Join(args, " "))
	out, err := s.Runner.Run(s.Sbatch, args...)
	for try := 0; err != nil && try < opts.Retries; try++ {
		logger.WarningPrintf("sbatch failed for %s, retrying: %v", job.Name(), err)
		time.Sleep(time.Second)
		out, err = s.Runner.Run(s.Sbatch, args...)
	}
	if err != nil {
		return 0, errors.Wrapf(err, "sbatch: %s", strings.TrimSpace(string(out)))
	}
	return ParseJobID(string(out))
}
