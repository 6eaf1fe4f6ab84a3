package main

import (
	"fmt"

	"github.com/kundajelab/chrombench/core"
	"github.com/kundajelab/chrombench/slurm"
)

type CancelCommand struct {
	Help    bool   `short:"h" long:"help" description:"Show this help message"`
	Cluster string `long:"cluster" description:"Cluster entry from the chrombench config" default:"default"`
	Args    struct {
		JobIDs []int `positional-arg-name:"jobid" description:"job ids to cancel" required:"1"`
	} `positional-args:"true"`
}

var cancelCommand CancelCommand

func (x *CancelCommand) Execute(args []string) error {
	if x.Help {
		printHelp(parser)
		return nil
	}
	cluster, err := core.GetClusterConfig(x.Cluster)
	if err != nil {
		return err
	}
	canceler := slurm.NewCanceler(cluster)
	if err := canceler.Cancel(x.Args.JobIDs); err != nil {
		return err
	}
	for _, id := range x.Args.JobIDs {
		fmt.Printf("Canceled job: %v\n", id)
	}
	return nil
}

func init() {
	parser.AddCommand("cancel",
		"Cancel scoring jobs",
		"Signal queued or running scoring jobs for termination",
		&cancelCommand)
}
