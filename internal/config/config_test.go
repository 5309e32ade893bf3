package config

import (
	"errors"
	"testing"

	"github.com/sethvargo/go-githubactions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAction(env map[string]string) *githubactions.Action {
	return githubactions.New(githubactions.WithGetenv(func(k string) string { return env[k] }))
}

func validEnv() map[string]string {
	return map[string]string{
		"GITHUB_REPOSITORY":     "octocat/hello-world",
		"INPUT_GITHUB-TOKEN":    "ghs_secret",
		"INPUT_PRIMARY-RUNNER":  "self-hosted,linux,x64",
		"INPUT_FALLBACK-RUNNER": "ubuntu-latest",
	}
}

func TestParseLabels(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "self-hosted,linux,x64", want: []string{"self-hosted", "linux", "x64"}},
		{in: "self-hosted, linux ,x64", want: []string{"self-hosted", "linux", "x64"}},
		{in: "self-hosted", want: []string{"self-hosted"}},
		{in: "self-hosted,,linux,", want: []string{"self-hosted", "linux"}},
		{in: "", want: nil},
		{in: " , ", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLabels(tt.in))
		})
	}
}

func TestHostFromServerURL(t *testing.T) {
	host, err := HostFromServerURL("")
	require.NoError(t, err)
	assert.Equal(t, "github.com", host)

	host, err = HostFromServerURL("https://github.example.com")
	require.NoError(t, err)
	assert.Equal(t, "github.example.com", host)

	_, err = HostFromServerURL("not a url")
	var cfgErr *ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestParseRepo(t *testing.T) {
	repo, err := ParseRepo("octocat/hello-world", "")
	require.NoError(t, err)
	assert.Equal(t, "octocat", repo.Owner)
	assert.Equal(t, "hello-world", repo.Name)
	assert.Equal(t, "github.com", repo.Host)

	for _, bad := range []string{"", "octocat", "a/b/c/d"} {
		_, err := ParseRepo(bad, "")
		var cfgErr *ConfigError
		assert.True(t, errors.As(err, &cfgErr), "ParseRepo(%q)", bad)
	}
}

func TestFromAction(t *testing.T) {
	cfg, err := FromAction(newAction(validEnv()))
	require.NoError(t, err)

	assert.Equal(t, "octocat/hello-world", cfg.RepoNWO())
	assert.Equal(t, "github.com", cfg.Host)
	assert.Equal(t, "ghs_secret", cfg.Token)
	assert.Equal(t, []string{"self-hosted", "linux", "x64"}, cfg.PrimaryLabels)
	assert.Equal(t, "ubuntu-latest", cfg.Fallback)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)

	c := cfg.Criteria()
	assert.Equal(t, cfg.PrimaryLabels, c.PrimaryLabels)
	assert.Equal(t, cfg.Fallback, c.Fallback)
}

func TestFromActionEnterpriseHost(t *testing.T) {
	env := validEnv()
	env["GITHUB_SERVER_URL"] = "https://github.example.com"

	cfg, err := FromAction(newAction(env))
	require.NoError(t, err)
	assert.Equal(t, "github.example.com", cfg.Host)
}

func TestFromActionMissingInputs(t *testing.T) {
	tests := []struct {
		name  string
		unset string
		set   map[string]string
		field string
	}{
		{name: "no token", unset: "INPUT_GITHUB-TOKEN", field: InputToken},
		{name: "no primary", unset: "INPUT_PRIMARY-RUNNER", field: InputPrimary},
		{name: "blank primary", set: map[string]string{"INPUT_PRIMARY-RUNNER": " , "}, field: InputPrimary},
		{name: "no fallback", unset: "INPUT_FALLBACK-RUNNER", field: InputFallback},
		{name: "no repository", unset: "GITHUB_REPOSITORY", field: "GITHUB_REPOSITORY"},
		{name: "malformed repository", set: map[string]string{"GITHUB_REPOSITORY": "octocat"}, field: "repository"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := validEnv()
			delete(env, tt.unset)
			for k, v := range tt.set {
				env[k] = v
			}

			_, err := FromAction(newAction(env))
			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr), "got %v", err)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}
