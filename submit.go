package main

import (
	"fmt"
	"strings"

	"github.com/kundajelab/chrombench/core"
	"github.com/kundajelab/chrombench/logger"
	"github.com/kundajelab/chrombench/slurm"
)

type SubmitCommand struct {
	Help       bool   `short:"h" long:"help" description:"Show this help message"`
	Cluster    string `long:"cluster" description:"Cluster entry from the chrombench config" default:"default"`
	Partition  string `short:"p" long:"partition" description:"Comma separated partition list overriding the configured default"`
	Time       string `short:"t" long:"time" description:"Time limit override, hours:minutes:seconds"`
	Gpus       int    `short:"G" long:"gpus" description:"GPU count override"`
	Constraint string `short:"C" long:"constraint" description:"GPU feature constraint override, | separated"`
	Mem        string `long:"mem" description:"Memory request override"`
	Script     string `long:"script" description:"Delegate script override"`
	DryRun     bool   `short:"n" long:"dry-run" description:"Print the sbatch command line without submitting"`
	CheckPaths bool   `long:"check-paths" description:"Verify the input files exist before submitting"`
	Retries    int    `long:"retries" description:"Resubmission attempts after a failed sbatch call"`
	Args       struct {
		Model       string `positional-arg-name:"model" description:"model identifier"`
		VariantsBed string `positional-arg-name:"variantsbed" description:"variants BED path"`
		CountsTSV   string `positional-arg-name:"countstsv" description:"counts TSV path"`
		Genome      string `positional-arg-name:"genome" description:"genome reference path"`
		CellType    string `positional-arg-name:"celltype" description:"cell-type label"`
	} `positional-args:"true" required:"yes"`
}

var submitCommand SubmitCommand

func (x *SubmitCommand) Execute(args []string) error {
	if x.Help {
		printHelp(parser)
		return nil
	}
	cluster, err := core.GetClusterConfig(x.Cluster)
	if err != nil {
		return err
	}
	opts := slurm.OptionsFromCluster(cluster)
	opts.Retries = x.Retries
	if len(x.Script) > 0 {
		opts.Script = x.Script
	}
	// script directives sit below command line flags
	if directives, derr := slurm.ParseDirectives(opts.Script); derr == nil {
		directives.Apply(&opts)
	} else {
		logger.WarningPrintf("submit: cannot parse script directives: %v", derr)
	}
	if len(x.Partition) > 0 {
		opts.Partitions = strings.Split(x.Partition, ",")
	}
	if len(x.Time) > 0 {
		opts.TimeLimit = x.Time
	}
	if x.Gpus > 0 {
		opts.GPUs = x.Gpus
	}
	if len(x.Constraint) > 0 {
		opts.Constraints = strings.Split(x.Constraint, "|")
	}
	if len(x.Mem) > 0 {
		opts.Memory = x.Mem
	}

	job := core.ScoringJob{
		Model:       x.Args.Model,
		VariantsBed: x.Args.VariantsBed,
		CountsTSV:   x.Args.CountsTSV,
		Genome:      x.Args.Genome,
		CellType:    x.Args.CellType,
	}
	if x.CheckPaths {
		if err := job.Validate(); err != nil {
			return err
		}
		if err := job.CheckPaths(); err != nil {
			return err
		}
	}
	logger.DebugObj("scoring job", job)

	submitter := slurm.NewSubmitter(cluster)
	if x.DryRun {
		line := append([]string{submitter.Sbatch}, slurm.BuildArgs(job, opts)...)
		fmt.Println(strings.Join(line, " "))
		return nil
	}
	id, err := submitter.Submit(job, opts)
	if err != nil {
		return err
	}
	fmt.Printf("Submitted batch job %d\n", id)
	return nil
}

func init() {
	parser.AddCommand("submit",
		"Submit a variant scoring job",
		"Queue one probed variant scoring run on the GPU partitions",
		&submitCommand)
}
