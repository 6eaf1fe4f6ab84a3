package slurm

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/kundajelab/chrombench/core"
)

// pipe-delimited to keep whitespace in reasons parseable
const queueFormat = "%i|%P|%j|%u|%t|%M|%D|%R"

// JobStatus is one row of queue state for a scoring job.
type JobStatus struct {
	ID        int
	Partition string
	Name      string
	User      string
	State     string
	Time      string
	Nodes     int
	Reason    string
}

// Queue reads scheduler state through the squeue binary.
type Queue struct {
	Squeue string
	Runner Runner
}

func NewQueue(c core.Cluster) *Queue {
	return &Queue{Squeue: c.Squeue, Runner: execRunner{}}
}

// Jobs lists queue state, optionally restricted to job ids or a job name.
func (q *Queue) Jobs(ids []int, name string) ([]JobStatus, error) {
	args := []string{"--noheader", "-o", queueFormat}
	if len(ids) > 0 {
		strs := make([]string, len(ids))
		for i, id := range ids {
			strs[i] = strconv.Itoa(id)
		}
		args = append(args, "-j", strings.Join(strs, ","))
	}
	if len(name) > 0 {
		args = append(args, "-n", name)
	}
	out, err := q.Runner.Run(q.Squeue, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "squeue: %s", strings.TrimSpace(string(out)))
	}
	return parseQueue(string(out))
}

func parseQueue(out string) ([]JobStatus, error) {
	var jobs []JobStatus
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		fields := strings.SplitN(line, "|", 8)
		if len(fields) != 8 {
			return nil, errors.Errorf("squeue: cannot parse %q", line)
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, errors.Wrapf(err, "squeue: job id in %q", line)
		}
		nodes, err := strconv.Atoi(fields[6])
		if err != nil {
			return nil, errors.Wrapf(err, "squeue: node count in %q", line)
		}
		jobs = append(jobs, JobStatus{
			ID:        id,
			Partition: fields[1],
			Name:      fields[2],
			User:      fields[3],
			State:     fields[4],
			Time:      fields[5],
			Nodes:     nodes,
			Reason:    fields[7],
		})
	}
	return jobs, nil
}
