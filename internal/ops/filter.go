package ops

import (
	"strings"

	"github.com/altinukshini/runner-select/internal/model"
)

// RunnerFilter narrows a runner listing. Zero fields match everything.
type RunnerFilter struct {
	Name     string // case-insensitive substring
	Status   string
	Label    string
	SkipBusy bool
}

func FilterRunners(runners []model.Runner, filter RunnerFilter) []model.Runner {
	var matched []model.Runner
	name := strings.ToLower(filter.Name)

	for _, r := range runners {
		if name != "" && !strings.Contains(strings.ToLower(r.Name), name) {
			continue
		}
		if filter.Status != "" && !strings.EqualFold(r.Status, filter.Status) {
			continue
		}
		if filter.Label != "" && !r.HasLabels([]string{filter.Label}) {
			continue
		}
		if filter.SkipBusy && r.Busy {
			continue
		}
		matched = append(matched, r)
	}
	return matched
}
