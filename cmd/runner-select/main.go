package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-githubactions"
	"github.com/spf13/cobra"

	"github.com/altinukshini/runner-select/internal/action"
	"github.com/altinukshini/runner-select/internal/api"
	"github.com/altinukshini/runner-select/internal/config"
)

var version = "dev"

func init() {
	if version != "dev" {
		return
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
}

func newRootCmd(gha *githubactions.Action) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runner-select",
		Short: "Pick a self-hosted runner when one is idle, otherwise a fallback",
		Long: "runner-select runs as a workflow step. It lists the repository's runners and sets the\n" +
			"use-runner output to the primary labels when a matching runner is idle and not busy,\n" +
			"or to the fallback runner otherwise.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, gha)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("log", "l", "info", "Set log level. Available: debug, info, warn, error")
	cmd.PersistentFlags().Duration("timeout", config.DefaultTimeout, "Timeout for the GitHub API request")

	cmd.PersistentPreRun = func(c *cobra.Command, args []string) {
		levelStr, _ := c.Flags().GetString("log")
		switch levelStr {
		case "debug":
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		case "warn":
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		case "error":
			zerolog.SetGlobalLevel(zerolog.ErrorLevel)
		default:
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	}

	cmd.AddCommand(newInspectCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func runAction(cmd *cobra.Command, gha *githubactions.Action) error {
	cfg, err := config.FromAction(gha)
	if err != nil {
		return err
	}
	gha.AddMask(cfg.Token)
	cfg.Timeout, _ = cmd.Flags().GetDuration("timeout")

	client, err := api.NewClient(cfg.Owner, cfg.Repo, api.Options{
		Host:    cfg.Host,
		Token:   cfg.Token,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return err
	}

	_, err = action.Run(cmd.Context(), cfg, client, gha)
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "runner-select", version)
		},
	}
}

// Step logs are read in the Actions UI, so no colour and no timestamps.
func setupLogger(w io.Writer) {
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName, zerolog.LevelFieldName},
	})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func main() {
	setupLogger(os.Stdout)
	gha := githubactions.New()
	root := newRootCmd(gha)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	root.SetContext(ctx)
	if err := root.Execute(); err != nil {
		gha.Errorf("%v", err)
		os.Exit(1)
	}
}
