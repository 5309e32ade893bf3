package ui

import (
	"github.com/altinukshini/runner-select/internal/api"
	"github.com/altinukshini/runner-select/internal/model"
)

// Runners messages
type RunnersLoadedMsg struct {
	Runners   []model.Runner
	RateLimit api.RateLimit
	Err       error
}
