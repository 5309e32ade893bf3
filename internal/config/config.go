package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cli/go-gh/v2/pkg/repository"
	"github.com/sethvargo/go-githubactions"

	"github.com/altinukshini/runner-select/internal/selector"
)

// Action input names, as declared in action.yml.
const (
	InputToken    = "github-token"
	InputPrimary  = "primary-runner"
	InputFallback = "fallback-runner"
)

const (
	DefaultHost    = "github.com"
	DefaultTimeout = 30 * time.Second
)

type Config struct {
	Owner string
	Repo  string
	Host  string
	Token string

	PrimaryLabels []string
	Fallback      string

	Timeout time.Duration
}

// ConfigError reports a missing or malformed input. It is returned before
// any request is made.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (c Config) RepoNWO() string {
	return fmt.Sprintf("%s/%s", c.Owner, c.Repo)
}

func (c Config) Criteria() selector.Criteria {
	return selector.Criteria{PrimaryLabels: c.PrimaryLabels, Fallback: c.Fallback}
}

func (c Config) Validate() error {
	if c.Owner == "" || c.Repo == "" {
		return &ConfigError{Field: "repository", Reason: "owner and repo are required"}
	}
	if c.Token == "" {
		return &ConfigError{Field: InputToken, Reason: "input required and not supplied"}
	}
	if len(c.PrimaryLabels) == 0 {
		return &ConfigError{Field: InputPrimary, Reason: "input required and not supplied"}
	}
	if c.Fallback == "" {
		return &ConfigError{Field: InputFallback, Reason: "input required and not supplied"}
	}
	return nil
}

// ParseLabels splits a comma-separated label list, trimming whitespace and
// dropping empty entries.
func ParseLabels(s string) []string {
	var labels []string
	for _, part := range strings.Split(s, ",") {
		if label := strings.TrimSpace(part); label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}

// ParseRepo splits an owner/repo string. The host is taken from the string
// when present, otherwise host is used.
func ParseRepo(nwo, host string) (repository.Repository, error) {
	if host == "" {
		host = DefaultHost
	}
	repo, err := repository.ParseWithHost(nwo, host)
	if err != nil {
		return repository.Repository{}, &ConfigError{Field: "repository", Reason: err.Error()}
	}
	return repo, nil
}

// HostFromServerURL turns GITHUB_SERVER_URL (e.g. https://github.example.com)
// into the host go-gh expects. An empty URL means github.com.
func HostFromServerURL(serverURL string) (string, error) {
	if serverURL == "" {
		return DefaultHost, nil
	}
	u, err := url.Parse(serverURL)
	if err != nil || u.Host == "" {
		return "", &ConfigError{Field: "GITHUB_SERVER_URL", Reason: fmt.Sprintf("invalid server URL %q", serverURL)}
	}
	return u.Host, nil
}

// FromAction builds the configuration from the workflow step's inputs and
// the runner environment.
func FromAction(a *githubactions.Action) (Config, error) {
	ghctx, err := a.Context()
	if err != nil {
		return Config{}, &ConfigError{Field: "context", Reason: err.Error()}
	}
	if ghctx.Repository == "" {
		return Config{}, &ConfigError{Field: "GITHUB_REPOSITORY", Reason: "not set"}
	}

	host, err := HostFromServerURL(ghctx.ServerURL)
	if err != nil {
		return Config{}, err
	}
	repo, err := ParseRepo(ghctx.Repository, host)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Owner:         repo.Owner,
		Repo:          repo.Name,
		Host:          repo.Host,
		Token:         a.GetInput(InputToken),
		PrimaryLabels: ParseLabels(a.GetInput(InputPrimary)),
		Fallback:      a.GetInput(InputFallback),
		Timeout:       DefaultTimeout,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
