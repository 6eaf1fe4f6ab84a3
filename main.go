package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

var parser = flags.NewNamedParser("chrombench", flags.PassDoubleDash)

func printHelp(parser *flags.Parser) {
	// Print help for active command
	if parser.Command.Active != nil {
		parser.Command = parser.Command.Active
	}
	var b bytes.Buffer
	parser.WriteHelp(&b)
	fmt.Println(b.String())
}

func main() {
	_, err := parser.Parse()
	if err == nil {
		os.Exit(0)
	}
	switch flagsErr := err.(type) {
	case *flags.Error:
		if flagsErr.Type == flags.ErrHelp ||
			flagsErr.Type == flags.ErrCommandRequired {
			printHelp(parser)
			os.Exit(0)
		} else if flagsErr.Type == flags.ErrRequired ||
			flagsErr.Type == flags.ErrUnknownCommand ||
			flagsErr.Type == flags.ErrMarshal {
			fmt.Println(flagsErr.Error())
			printHelp(parser)
			os.Exit(2)
		}
		fmt.Println(flagsErr.Error())
		os.Exit(1)
	default:
		fmt.Println(err.Error())
		// surface the scheduler CLI exit status as our own
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}
