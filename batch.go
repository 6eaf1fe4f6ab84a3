package main

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/kundajelab/chrombench/core"
	"github.com/kundajelab/chrombench/logger"
	"github.com/kundajelab/chrombench/slurm"
)

type BatchCommand struct {
	Help    bool   `short:"h" long:"help" description:"Show this help message"`
	Cluster string `long:"cluster" description:"Cluster entry from the chrombench config" default:"default"`
	DryRun  bool   `short:"n" long:"dry-run" description:"Print the sbatch command lines without submitting"`
	Retries int    `long:"retries" description:"Resubmission attempts after a failed sbatch call"`
	Args    struct {
		Manifest string `positional-arg-name:"manifest" description:"JSON batch manifest"`
	} `positional-args:"true" required:"yes"`
}

var batchCommand BatchCommand

func (x *BatchCommand) Execute(args []string) error {
	if x.Help {
		printHelp(parser)
		return nil
	}
	manifest, err := core.LoadManifest(x.Args.Manifest)
	if err != nil {
		return err
	}
	waves, err := manifest.Waves()
	if err != nil {
		return err
	}
	cluster, err := core.GetClusterConfig(x.Cluster)
	if err != nil {
		return err
	}
	submitter := slurm.NewSubmitter(cluster)

	// job ids by manifest label, filled wave by wave
	ids := make(map[string]int)
	var mu sync.Mutex

	for _, wave := range waves {
		var grp errgroup.Group
		if manifest.MaxConcurrent > 0 {
			grp.SetLimit(manifest.MaxConcurrent)
		}
		for _, entry := range wave {
			entry := entry
			grp.Go(func() error {
				opts := slurm.OptionsFromCluster(cluster)
				opts.Retries = x.Retries
				if directives, derr := slurm.ParseDirectives(opts.Script); derr == nil {
					directives.Apply(&opts)
				}
				if x.DryRun {
					// ids do not exist yet; preview with the manifest labels
					opts.Dependency = entry.DependsOn
					line := append([]string{submitter.Sbatch},
						slurm.BuildArgs(entry.ScoringJob, opts)...)
					fmt.Println(strings.Join(line, " "))
					return nil
				}
				mu.Lock()
				for _, dep := range entry.DependsOn {
					opts.Dependency = append(opts.Dependency, strconv.Itoa(ids[dep]))
				}
				mu.Unlock()
				id, serr := submitter.Submit(entry.ScoringJob, opts)
				if serr != nil {
					return serr
				}
				mu.Lock()
				ids[entry.Key()] = id
				mu.Unlock()
				fmt.Printf("Submitted batch job %d (%s)\n", id, entry.Key())
				return nil
			})
		}
		if err := grp.Wait(); err != nil {
			logger.ErrorPrintf("batch: wave failed: %v", err)
			return err
		}
	}
	return nil
}

func init() {
	parser.AddCommand("batch",
		"Submit a batch of variant scoring jobs",
		"Queue every scoring job in a manifest, honoring inter-job dependencies",
		&batchCommand)
}
