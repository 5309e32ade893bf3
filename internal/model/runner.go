package model

// Runner statuses reported by the runners API.
const (
	RunnerStatusIdle    = "idle"
	RunnerStatusOnline  = "online"
	RunnerStatusOffline = "offline"
)

// RunnerLabel represents a label attached to a runner.
type RunnerLabel struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"` // "read-only" or "custom"
}

// Runner represents a GitHub Actions runner.
type Runner struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	OS            string        `json:"os"`
	Status        string        `json:"status"`
	Busy          bool          `json:"busy"`
	Ephemeral     bool          `json:"ephemeral"`
	RunnerGroupID int64         `json:"runner_group_id"`
	Labels        []RunnerLabel `json:"labels"`
}

// LabelNames returns the names of the runner's labels in API order.
func (r Runner) LabelNames() []string {
	names := make([]string, 0, len(r.Labels))
	for _, l := range r.Labels {
		names = append(names, l.Name)
	}
	return names
}

// HasLabels reports whether every name in want is attached to the runner.
func (r Runner) HasLabels(want []string) bool {
	have := make(map[string]struct{}, len(r.Labels))
	for _, l := range r.Labels {
		have[l.Name] = struct{}{}
	}
	for _, name := range want {
		if _, ok := have[name]; !ok {
			return false
		}
	}
	return true
}

// RunnersResponse is the API response for listing runners.
type RunnersResponse struct {
	TotalCount int      `json:"total_count"`
	Runners    []Runner `json:"runners"`
}
