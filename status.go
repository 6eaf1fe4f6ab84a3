package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/kundajelab/chrombench/core"
	"github.com/kundajelab/chrombench/slurm"
)

type StatusCommand struct {
	Help    bool   `short:"h" long:"help" description:"Show this help message"`
	Cluster string `long:"cluster" description:"Cluster entry from the chrombench config" default:"default"`
	Name    string `short:"n" long:"name" description:"Filter by job name"`
	Args    struct {
		JobIDs []int `positional-arg-name:"jobid" description:"job ids to show"`
	} `positional-args:"true"`
}

var statusCommand StatusCommand

func (x *StatusCommand) Execute(args []string) error {
	if x.Help {
		printHelp(parser)
		return nil
	}
	cluster, err := core.GetClusterConfig(x.Cluster)
	if err != nil {
		return err
	}
	queue := slurm.NewQueue(cluster)
	jobs, err := queue.Jobs(x.Args.JobIDs, x.Name)
	if err != nil {
		return err
	}
	wrt := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(wrt, "JOBID\tPARTITION\tNAME\tUSER\tST\tTIME\tNODES\tNODELIST(REASON)")
	for _, job := range jobs {
		fmt.Fprintln(wrt, strconv.Itoa(job.ID)+"\t"+
			job.Partition+"\t"+
			job.Name+"\t"+
			job.User+"\t"+
			job.State+"\t"+
			job.Time+"\t"+
			strconv.Itoa(job.Nodes)+"\t"+
			job.Reason)
	}
	return wrt.Flush()
}

func init() {
	parser.AddCommand("status",
		"Show queue state",
		"View scoring jobs in the scheduling queue",
		&statusCommand)
}
