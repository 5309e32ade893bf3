// Package selector decides which runner a job should use.
package selector

import (
	"encoding/json"
	"fmt"

	"github.com/altinukshini/runner-select/internal/model"
)

// Criteria describes the preferred runner and what to use when it is taken.
type Criteria struct {
	PrimaryLabels []string
	Fallback      string
}

// Result is the runner decision for a single invocation.
type Result struct {
	// Runner is the label set the job should run on.
	Runner           []string
	PrimaryAvailable bool
}

// JSON encodes the chosen label set as a JSON array, the shape
// fromJSON() expects in a workflow's runs-on.
func (r Result) JSON() (string, error) {
	data, err := json.Marshal(r.Runner)
	if err != nil {
		return "", fmt.Errorf("encode runner labels: %w", err)
	}
	return string(data), nil
}

// Qualifies reports whether r is idle, unclaimed and carries every label.
func Qualifies(r model.Runner, labels []string) bool {
	return r.Status == model.RunnerStatusIdle && !r.Busy && r.HasLabels(labels)
}

// Select returns the primary labels when any runner qualifies for them and
// the fallback otherwise. The fallback is used as a single label, unsplit.
func Select(runners []model.Runner, c Criteria) Result {
	for _, r := range runners {
		if Qualifies(r, c.PrimaryLabels) {
			return Result{Runner: c.PrimaryLabels, PrimaryAvailable: true}
		}
	}
	return Result{Runner: []string{c.Fallback}}
}
