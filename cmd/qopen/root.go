package main

import (
	"fmt"
	"os"

	apppkg "github.com/kk-code-lab/qopen/internal/app"
	"github.com/kk-code-lab/qopen/internal/config"
	"github.com/kk-code-lab/qopen/internal/search"
	"github.com/kk-code-lab/qopen/internal/shellsetup"
	"github.com/spf13/cobra"
)

const setupAutoDetect = "auto"

var parentShellDetector = shellsetup.DetectParentShellName

// sessionFlags are shared by the dialog and the query command.
type sessionFlags struct {
	configPath string
	buffers    []string
	showHidden bool
	limit      int
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&f.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/qopen/config.toml)")
	cmd.PersistentFlags().StringArrayVarP(&f.buffers, "buffer", "b", nil, "open buffer path listed ahead of walked files (repeatable)")
	cmd.PersistentFlags().BoolVar(&f.showHidden, "hidden", false, "include hidden files and directories")
	cmd.PersistentFlags().IntVarP(&f.limit, "limit", "n", 0, "maximum number of results")
}

// loadConfig layers flags over the file and environment configuration.
func (f *sessionFlags) loadConfig(cmd *cobra.Command, roots []string) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if len(roots) > 0 {
		cfg.Roots = roots
	}
	if cmd.Flags().Changed("hidden") {
		cfg.ShowHidden = f.showHidden
	}
	if f.limit > 0 {
		cfg.ResultLimit = f.limit
	}
	return cfg, nil
}

func (f *sessionFlags) newSession(cfg config.Config) (*search.Session, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	return buildSession(cfg, cwd, f.buffers)
}

func buildSession(cfg config.Config, cwd string, buffers []string) (*search.Session, error) {
	rules, err := search.NewIgnoreRules(cfg.IgnoreDirs, cfg.IgnoreExtensions, cfg.ShowHidden)
	if err != nil {
		return nil, err
	}
	roots := cfg.ResolveRoots(cwd)
	return search.NewSession(search.Options{
		Roots:       roots,
		Producer:    search.NewWalker(rules),
		Buffers:     search.StaticBuffers{Paths: buffers, Roots: roots},
		BatchSize:   cfg.BatchSize,
		ResultLimit: cfg.ResultLimit,
	}), nil
}

func newRootCommand() *cobra.Command {
	flags := &sessionFlags{}
	var (
		printOnly bool
		setup     string
		query     string
	)

	cmd := &cobra.Command{
		Use:   "qopen [roots...]",
		Short: "Quick-open files by path segments",
		Long: `qopen indexes the given project roots (or the current directory) while you
type and lists files whose path segments match the query. "app/main" finds
main.* files below a directory whose name contains "app".`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("setup") {
				shell := setup
				if shell == setupAutoDetect {
					shell = ""
					if len(args) > 0 {
						shell = args[0]
					}
				}
				return shellsetup.PrintSetup(cmd.OutOrStdout(), shell, shellsetup.Config{DetectParent: parentShellDetector})
			}

			cfg, err := flags.loadConfig(cmd, args)
			if err != nil {
				return err
			}
			session, err := flags.newSession(cfg)
			if err != nil {
				return err
			}

			app, err := apppkg.NewApplication(session, apppkg.Options{
				PrintOnly:    printOnly,
				InitialQuery: query,
			})
			if err != nil {
				return fmt.Errorf("initialize terminal: %w", err)
			}
			app.Run()
			if err := app.Close(); err != nil {
				return err
			}

			if chosen := app.ChosenPath(); chosen != "" {
				fmt.Fprintln(cmd.OutOrStdout(), chosen)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&printOnly, "print", "p", false, "print the chosen path instead of opening an editor")
	cmd.Flags().StringVarP(&query, "query", "q", "", "initial query")
	cmd.Flags().StringVarP(&setup, "setup", "s", "", "print shell integration for SHELL (detected when omitted)")
	cmd.Flags().Lookup("setup").NoOptDefVal = setupAutoDetect

	cmd.AddCommand(newQueryCommand(flags))
	return cmd
}
