package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kundajelab/chrombench/core"
)

type ConfigCommand struct {
	Help       bool   `short:"h" long:"help" description:"Show this help message"`
	Cluster    string `long:"cluster" description:"Cluster entry to update" default:"default"`
	Partition  string `long:"partition" description:"Comma separated partition list"`
	Time       string `long:"time" description:"Time limit"`
	Gpus       int    `long:"gpus" description:"GPU count"`
	Constraint string `long:"constraint" description:"GPU feature constraints, | separated"`
	Mem        string `long:"mem" description:"Memory request"`
	Script     string `long:"script" description:"Delegate script path"`
	Sbatch     string `long:"sbatch" description:"sbatch binary"`
	Squeue     string `long:"squeue" description:"squeue binary"`
	Scancel    string `long:"scancel" description:"scancel binary"`
	Show       bool   `long:"show" description:"Print the effective cluster defaults and exit"`
}

var configCommand ConfigCommand

func (x *ConfigCommand) Execute(args []string) error {
	if x.Help {
		printHelp(parser)
		return nil
	}
	if x.Show {
		cluster, err := core.GetClusterConfig(x.Cluster)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(cluster, "", "	")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}
	config, err := core.ReadConfig()
	if err != nil {
		return err
	}
	cluster := config[x.Cluster]
	if len(x.Partition) > 0 {
		cluster.Partitions = strings.Split(x.Partition, ",")
	}
	if len(x.Time) > 0 {
		cluster.TimeLimit = x.Time
	}
	if x.Gpus > 0 {
		cluster.GPUs = x.Gpus
	}
	if len(x.Constraint) > 0 {
		cluster.Constraints = strings.Split(x.Constraint, "|")
	}
	if len(x.Mem) > 0 {
		cluster.Memory = x.Mem
	}
	if len(x.Script) > 0 {
		cluster.Script = x.Script
	}
	if len(x.Sbatch) > 0 {
		cluster.Sbatch = x.Sbatch
	}
	if len(x.Squeue) > 0 {
		cluster.Squeue = x.Squeue
	}
	if len(x.Scancel) > 0 {
		cluster.Scancel = x.Scancel
	}
	config[x.Cluster] = cluster
	return core.WriteConfig(config)
}

func init() {
	parser.AddCommand("config",
		"Manage cluster defaults",
		"Inspect or persist per-cluster submission defaults",
		&configCommand)
}
