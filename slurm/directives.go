package slurm

import (
	"bufio"
	"os"
	"strings"

	flag "github.com/juju/gnuflag"
	"github.com/pkg/errors"
)

const directivePrefix = "#SBATCH"

// canonical names for flags registered under both short and long forms
var directiveNames = map[string]string{
	"p":          "partition",
	"partition":  "partition",
	"t":          "time",
	"time":       "time",
	"G":          "gpus",
	"gpus":       "gpus",
	"C":          "constraint",
	"constraint": "constraint",
	"mem":        "mem",
}

// Directives are resource requests read from #SBATCH lines in the delegate
// script. Only the directives this tool forwards are recognized; anything
// else in the script is left for sbatch itself.
type Directives struct {
	Partition  string
	TimeLimit  string
	GPUs       int
	Constraint string
	Memory     string

	set map[string]bool
}

// Slurm accepts short and long forms of the same option
// Register both with the same flag variable
func setFlagString(flags *flag.FlagSet, short, long, value, usage string) *string {
	flagVar := flags.String(short, value, usage)
	if short != long {
		flags.StringVar(flagVar, long, value, usage)
	}
	return flagVar
}

func setFlagInt(flags *flag.FlagSet, short, long string, value int, usage string) *int {
	flagVar := flags.Int(short, value, usage)
	if short != long {
		flags.IntVar(flagVar, long, value, usage)
	}
	return flagVar
}

// ParseDirectives scans a delegate script for #SBATCH lines. A missing
// script is not an error; the script may only exist on the cluster side.
func ParseDirectives(path string) (Directives, error) {
	d := Directives{set: make(map[string]bool)}
	file, err := os.Open(path)
	if err != nil {
		return d, nil
	}
	defer file.Close()

	var args []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, directivePrefix) {
			continue
		}
		args = append(args, strings.Fields(line[len(directivePrefix):])...)
	}
	if err := scanner.Err(); err != nil {
		return d, errors.Wrapf(err, "directives: scan %s", path)
	}
	if len(args) == 0 {
		return d, nil
	}

	flags := flag.NewFlagSet("sbatch-directives", flag.ContinueOnError)
	partition := setFlagString(flags, "p", "partition", "", "partition list")
	timeLimit := setFlagString(flags, "t", "time", "", "time limit")
	gpus := setFlagInt(flags, "G", "gpus", 0, "gpu count")
	constraint := setFlagString(flags, "C", "constraint", "", "feature constraint")
	mem := setFlagString(flags, "mem", "mem", "", "memory request")
	// unknown directives are sbatch's business, not a parse failure
	if err := flags.Parse(false, knownArgs(args)); err != nil {
		return d, errors.Wrapf(err, "directives: parse %s", path)
	}
	flags.Visit(func(f *flag.Flag) {
		if key, ok := directiveNames[f.Name]; ok {
			d.set[key] = true
		}
	})
	d.Partition = *partition
	d.TimeLimit = *timeLimit
	d.GPUs = *gpus
	d.Constraint = *constraint
	d.Memory = *mem
	return d, nil
}

// knownArgs drops directive tokens this tool does not recognize, keeping
// option/value pairs intact.
func knownArgs(args []string) []string {
	var kept []string
	skipValue := false
	for _, arg := range args {
		if skipValue {
			kept = append(kept, arg)
			skipValue = false
			continue
		}
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		name := strings.TrimLeft(arg, "-")
		hasValue := false
		if eq := strings.Index(name, "="); eq >= 0 {
			name = name[:eq]
			hasValue = true
		}
		if _, ok := directiveNames[name]; !ok {
			continue
		}
		kept = append(kept, arg)
		skipValue = !hasValue
	}
	return kept
}

// Apply overrides the options with every directive the script set. The
// caller applies its own command line flags afterwards, so the precedence
// stays CLI over script over configured defaults.
func (d Directives) Apply(opts *Options) {
	if d.set["partition"] {
		opts.Partitions = strings.Split(d.Partition, ",")
	}
	if d.set["time"] {
		opts.TimeLimit = d.TimeLimit
	}
	if d.set["gpus"] {
		opts.GPUs = d.GPUs
	}
	if d.set["constraint"] {
		opts.Constraints = strings.Split(d.Constraint, "|")
	}
	if d.set["mem"] {
		opts.Memory = d.Memory
	}
}
