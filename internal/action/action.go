// Package action runs a single runner selection inside a workflow step.
package action

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/altinukshini/runner-select/internal/api"
	"github.com/altinukshini/runner-select/internal/config"
	"github.com/altinukshini/runner-select/internal/selector"
)

// OutputUseRunner is the step output holding the JSON label array.
const OutputUseRunner = "use-runner"

type RunnerLister interface {
	ListRunners(ctx context.Context) (*api.RunnersPage, error)
}

// Outputs receives step outputs. *githubactions.Action satisfies it.
type Outputs interface {
	SetOutput(name, value string)
}

// Run lists the repository's runners, picks one and publishes the choice.
// On error nothing is published.
func Run(ctx context.Context, cfg config.Config, runners RunnerLister, out Outputs) (selector.Result, error) {
	log.Debug().Str("repo", cfg.RepoNWO()).Strs("primary", cfg.PrimaryLabels).Str("fallback", cfg.Fallback).Msg("listing runners")

	page, err := runners.ListRunners(ctx)
	if err != nil {
		return selector.Result{}, err
	}
	log.Debug().Int("runners", len(page.Runners)).Int("rate_remaining", page.RateLimit.Remaining).Msg("runners listed")

	result := selector.Select(page.Runners, cfg.Criteria())
	encoded, err := result.JSON()
	if err != nil {
		return selector.Result{}, err
	}

	log.Info().Msgf("Primary runner is online: %t", result.PrimaryAvailable)
	log.Info().Msgf("Using runner: %s", encoded)

	out.SetOutput(OutputUseRunner, encoded)
	return result, nil
}
