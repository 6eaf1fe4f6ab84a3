package main

import (
	"fmt"

	"github.com/kundajelab/chrombench/core"
	"github.com/kundajelab/chrombench/drawer"
)

type PlanCommand struct {
	Help   bool   `short:"h" long:"help" description:"Show this help message"`
	Output string `short:"o" long:"output" description:"DOT file to write" default:"chrombench-plan.gv"`
	Args   struct {
		Manifest string `positional-arg-name:"manifest" description:"JSON batch manifest"`
	} `positional-args:"true" required:"yes"`
}

var planCommand PlanCommand

func (x *PlanCommand) Execute(args []string) error {
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
	d := drawer.New()
	lastWave := len(waves) - 1
	for wave, entries := range waves {
		for _, entry := range entries {
			if err := d.AddJob(entry.Key(), wave, lastWave); err != nil {
				return err
			}
		}
	}
	for _, entries := range waves {
		for _, entry := range entries {
			for _, dep := range entry.DependsOn {
				if err := d.AddDependency(dep, entry.Key()); err != nil {
					return err
				}
			}
		}
	}
	if err := d.DrawFile(x.Output); err != nil {
		return err
	}
	fmt.Printf("Wrote submission plan to %s\n", x.Output)
	return nil
}

func init() {
	parser.AddCommand("plan",
		"Render a batch manifest",
		"Write the manifest dependency graph as a Graphviz DOT file",
		&planCommand)
}
