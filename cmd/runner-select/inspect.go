package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cli/go-gh/v2/pkg/auth"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/altinukshini/runner-select/internal/api"
	"github.com/altinukshini/runner-select/internal/config"
	"github.com/altinukshini/runner-select/internal/ops"
	"github.com/altinukshini/runner-select/internal/selector"
	"github.com/altinukshini/runner-select/internal/tui"
	"github.com/altinukshini/runner-select/internal/tui/runnersview"
)

type inspectOptions struct {
	repo     string
	primary  string
	fallback string
	token    string
	once     bool
	filter   ops.RunnerFilter
}

func addSelectionFlags(fs *pflag.FlagSet, opts *inspectOptions) {
	fs.StringVarP(&opts.repo, "repo", "R", "", "Repository in [HOST/]owner/repo format (required)")
	fs.StringVar(&opts.primary, "primary", "", "Comma-separated labels of the primary runner (required)")
	fs.StringVar(&opts.fallback, "fallback", "ubuntu-latest", "Runner to use when no primary runner is idle")
	fs.StringVar(&opts.token, "token", "", "GitHub token (defaults to GH_TOKEN or the gh CLI login)")
}

func newInspectCmd() *cobra.Command {
	opts := &inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the repository's runners and the runner a step would pick",
		Example: "  runner-select inspect -R octocat/hello-world --primary self-hosted,linux,x64\n" +
			"  runner-select inspect -R octocat/hello-world --primary self-hosted --once",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			cfg.Timeout, _ = cmd.Flags().GetDuration("timeout")

			client, err := api.NewClient(cfg.Owner, cfg.Repo, api.Options{
				Host:    cfg.Host,
				Token:   cfg.Token,
				Timeout: cfg.Timeout,
			})
			if err != nil {
				return err
			}

			if opts.once {
				page, err := client.ListRunners(cmd.Context())
				if err != nil {
					return err
				}
				// The decision always considers every runner; filters only narrow the table.
				result := selector.Select(page.Runners, cfg.Criteria())
				shown := ops.FilterRunners(page.Runners, opts.filter)
				fmt.Fprintln(cmd.OutOrStdout(), runnersview.RenderDecision(result))
				fmt.Fprint(cmd.OutOrStdout(), runnersview.RenderTable(shown, cfg.Criteria()))
				return nil
			}

			p := tea.NewProgram(tui.NewApp(cfg, client), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
	addSelectionFlags(cmd.Flags(), opts)
	cmd.Flags().BoolVar(&opts.once, "once", false, "Print the runners once and exit instead of opening the interactive view")
	cmd.Flags().StringVar(&opts.filter.Name, "name", "", "With --once, only list runners whose name contains this")
	cmd.Flags().StringVar(&opts.filter.Status, "status", "", "With --once, only list runners with this status")
	cmd.Flags().StringVar(&opts.filter.Label, "label", "", "With --once, only list runners carrying this label")
	cmd.Flags().BoolVar(&opts.filter.SkipBusy, "skip-busy", false, "With --once, hide busy runners")
	return cmd
}

func (o *inspectOptions) config() (config.Config, error) {
	if o.repo == "" {
		o.repo = os.Getenv("GH_REPO")
	}
	if o.repo == "" {
		return config.Config{}, &config.ConfigError{Field: "repo", Reason: "-R owner/repo is required"}
	}
	repo, err := config.ParseRepo(o.repo, "")
	if err != nil {
		return config.Config{}, err
	}

	token := o.token
	if token == "" {
		token, _ = auth.TokenForHost(repo.Host)
	}

	cfg := config.Config{
		Owner:         repo.Owner,
		Repo:          repo.Name,
		Host:          repo.Host,
		Token:         token,
		PrimaryLabels: config.ParseLabels(o.primary),
		Fallback:      o.fallback,
		Timeout:       config.DefaultTimeout,
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
