package action

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-githubactions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altinukshini/runner-select/internal/api"
	"github.com/altinukshini/runner-select/internal/config"
	"github.com/altinukshini/runner-select/internal/model"
)

type fakeLister struct {
	runners []model.Runner
	err     error
}

func (f fakeLister) ListRunners(context.Context) (*api.RunnersPage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &api.RunnersPage{RunnersResponse: model.RunnersResponse{TotalCount: len(f.runners), Runners: f.runners}}, nil
}

type recordedOutputs map[string]string

func (o recordedOutputs) SetOutput(name, value string) { o[name] = value }

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

func testConfig(primary []string) config.Config {
	return config.Config{
		Owner:         "octocat",
		Repo:          "hello-world",
		Host:          "github.com",
		Token:         "ghs_secret",
		PrimaryLabels: primary,
		Fallback:      "ubuntu-latest",
	}
}

func labelled(status string, busy bool, labels ...string) model.Runner {
	r := model.Runner{Status: status, Busy: busy, Labels: []model.RunnerLabel{}}
	for _, l := range labels {
		r.Labels = append(r.Labels, model.RunnerLabel{Name: l})
	}
	return r
}

func TestRun(t *testing.T) {
	tests := []struct {
		name          string
		primary       []string
		runners       []model.Runner
		wantOutput    string
		wantAvailable bool
	}{
		{
			name:          "primary idle",
			primary:       []string{"self-hosted", "linux", "x64"},
			runners:       []model.Runner{labelled("idle", false, "self-hosted", "linux", "x64", "gpu")},
			wantOutput:    `["self-hosted","linux","x64"]`,
			wantAvailable: true,
		},
		{
			name:       "primary busy",
			primary:    []string{"self-hosted", "linux"},
			runners:    []model.Runner{labelled("idle", true, "self-hosted", "linux")},
			wantOutput: `["ubuntu-latest"]`,
		},
		{
			name:       "no runners",
			primary:    []string{"self-hosted"},
			runners:    nil,
			wantOutput: `["ubuntu-latest"]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLog(t)
			out := recordedOutputs{}

			result, err := Run(context.Background(), testConfig(tt.primary), fakeLister{runners: tt.runners}, out)
			require.NoError(t, err)

			assert.Equal(t, tt.wantAvailable, result.PrimaryAvailable)
			assert.Equal(t, recordedOutputs{OutputUseRunner: tt.wantOutput}, out)
			assert.Contains(t, logs.String(), "Using runner: ")
		})
	}
}

func TestRunListError(t *testing.T) {
	captureLog(t)
	out := recordedOutputs{}

	boom := &api.TransportError{Err: errors.New("no route to host")}
	_, err := Run(context.Background(), testConfig([]string{"self-hosted"}), fakeLister{err: boom}, out)

	require.ErrorIs(t, err, boom)
	assert.Empty(t, out)
}

// The remaining tests run against the real client with a faked transport and
// publish through the workflow command file, as a step would.

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func fakeGitHub(status int, body string) roundTripFunc {
	return func(req *http.Request) (*http.Response, error) {
		header := http.Header{}
		header.Set("Content-Type", "application/json")
		return &http.Response{
			StatusCode: status,
			Header:     header,
			Body:       io.NopCloser(strings.NewReader(body)),
			Request:    req,
		}, nil
	}
}

func newStepAction(t *testing.T) (*githubactions.Action, string) {
	t.Helper()
	outputFile := filepath.Join(t.TempDir(), "github_output")
	require.NoError(t, os.WriteFile(outputFile, nil, 0o600))

	env := map[string]string{"GITHUB_OUTPUT": outputFile}
	a := githubactions.New(
		githubactions.WithGetenv(func(k string) string { return env[k] }),
		githubactions.WithWriter(io.Discard),
	)
	return a, outputFile
}

func TestRunPublishesOutput(t *testing.T) {
	captureLog(t)
	cfg := testConfig([]string{"self-hosted", "linux", "x64"})
	client, err := api.NewClient(cfg.Owner, cfg.Repo, api.Options{
		Host:      cfg.Host,
		Token:     cfg.Token,
		Transport: fakeGitHub(http.StatusOK, `{"total_count":1,"runners":[{"name":"r1","status":"idle","busy":false,"labels":[{"name":"self-hosted"},{"name":"linux"},{"name":"x64"}]}]}`),
	})
	require.NoError(t, err)

	a, outputFile := newStepAction(t)
	result, err := Run(context.Background(), cfg, client, a)
	require.NoError(t, err)
	assert.True(t, result.PrimaryAvailable)

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), OutputUseRunner)
	assert.Contains(t, string(data), `["self-hosted","linux","x64"]`)
}

func TestRunServiceUnavailable(t *testing.T) {
	captureLog(t)
	cfg := testConfig([]string{"self-hosted"})
	client, err := api.NewClient(cfg.Owner, cfg.Repo, api.Options{
		Host:      cfg.Host,
		Token:     cfg.Token,
		Transport: fakeGitHub(http.StatusServiceUnavailable, `{"message":"Service Unavailable"}`),
	})
	require.NoError(t, err)

	a, outputFile := newStepAction(t)
	_, err = Run(context.Background(), cfg, client, a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")

	var apiErr *api.APIError
	assert.True(t, errors.As(err, &apiErr))

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Empty(t, data)
}
