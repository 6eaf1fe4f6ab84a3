package slurm

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/kundajelab/chrombench/core"
)

// Canceler signals queued or running scoring jobs through scancel.
type Canceler struct {
	Scancel string
	Runner  Runner
}

func NewCanceler(c core.Cluster) *Canceler {
	return &Canceler{Scancel: c.Scancel, Runner: execRunner{}}
}

// Cancel terminates the given jobs in one scancel call.
func (c *Canceler) Cancel(ids []int) error {
	if len(ids) == 0 {
		return errors.New("scancel: need to specify job ID")
	}
	args := make([]string, len(ids))
	for i, id := range ids {
		args[i] = strconv.Itoa(id)
	}
	out, err := c.Runner.Run(c.Scancel, args...)
	if err != nil {
		return errors.Wrapf(err, "scancel: %s", strings.TrimSpace(string(out)))
	}
	return nil
}
