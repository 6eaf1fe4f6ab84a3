package core

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// DefaultScript is the delegate executed on the allocated node. It receives
// the five scoring arguments verbatim and in order.
const DefaultScript = "run_probed_variant_scoring.sh"

// ScoringJob describes one probed variant scoring run: a trained model
// scored against a variant set for a single cell type.
type ScoringJob struct {
	Model       string `json:"model"`
	VariantsBed string `json:"variants_bed"`
	CountsTSV   string `json:"counts_tsv"`
	Genome      string `json:"genome"`
	CellType    string `json:"cell_type"`
}

// Name returns the scheduler-visible job name.
func (j ScoringJob) Name() string {
	return fmt.Sprintf("variantscoring.%s.%s", j.Model, j.CellType)
}

// OutputLog returns the stdout log path written by the scheduler.
func (j ScoringJob) OutputLog() string {
	return fmt.Sprintf("%s.%s.vscoring.log.o", j.Model, j.CellType)
}

// ErrorLog returns the stderr log path written by the scheduler.
func (j ScoringJob) ErrorLog() string {
	return fmt.Sprintf("%s.%s.vscoring.log.e", j.Model, j.CellType)
}

// Args returns the delegate script arguments in submission order.
func (j ScoringJob) Args() []string {
	return []string{j.Model, j.VariantsBed, j.CountsTSV, j.Genome, j.CellType}
}

// Validate rejects jobs with empty fields. Submission itself does not
// require it; callers that want the original pass-through behavior skip it.
func (j ScoringJob) Validate() error {
	fields := map[string]string{
		"model":       j.Model,
		"variantsbed": j.VariantsBed,
		"countstsv":   j.CountsTSV,
		"genome":      j.Genome,
		"celltype":    j.CellType,
	}
	for name, value := range fields {
		if len(value) == 0 {
			return errors.Errorf("scoring job %q: empty %s", j.Name(), name)
		}
	}
	return nil
}

// CheckPaths verifies the three input files exist on the submit host.
func (j ScoringJob) CheckPaths() error {
	for _, path := range []string{j.VariantsBed, j.CountsTSV, j.Genome} {
		info, err := os.Stat(path)
		if err != nil {
			return errors.Wrapf(err, "scoring job %q", j.Name())
		}
		if info.IsDir() {
			return errors.Errorf("scoring job %q: %s is a directory", j.Name(), path)
		}
	}
	return nil
}
