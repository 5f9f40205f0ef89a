// Package cli assembles the mssd admin console command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mssd/mssd-console/cli/cmd/blogs"
	"github.com/mssd/mssd-console/cli/cmd/resources"
	"github.com/mssd/mssd-console/cli/helpers"
	"github.com/mssd/mssd-console/pkg/config"
	"github.com/mssd/mssd-console/pkg/logger"
)

// RootCmd builds the mssd command tree.
func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mssd",
		Short:         "MSSD training-site back-office console",
		Long:          "Browse and manage the MSSD site content: blogs, formations, themes, portfolio, calendar, reservations and incoming requests.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(cmd)
		},
	}

	root.PersistentFlags().String("format", "", "Output format: auto, json or tui")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	root.PersistentFlags().Bool("log-json", false, "Emit logs as JSON")

	root.AddCommand(blogs.Cmd())
	root.AddCommand(resources.Commands()...)
	root.AddCommand(langCmd())

	return root
}

// setup loads configuration, applies flag overrides and attaches the
// logger and app to the command context.
func setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if format, _ := cmd.Flags().GetString("format"); format != "" {
		cfg.CLI.Format = format
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.CLI.LogLevel = level
	}
	if logJSON, _ := cmd.Flags().GetBool("log-json"); logJSON {
		cfg.CLI.LogJSON = true
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	log := logger.NewLogger(&logger.Config{
		Level:      logger.LogLevel(cfg.CLI.LogLevel),
		Output:     os.Stderr,
		JSON:       cfg.CLI.LogJSON,
		TimeFormat: "15:04:05",
	})

	app, err := helpers.NewApp(cfg)
	if err != nil {
		return err
	}

	ctx := logger.ContextWith(cmd.Context(), log)
	cmd.SetContext(helpers.WithApp(ctx, app))
	return nil
}

// langCmd shows or switches the persisted UI language.
func langCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lang [fr|en]",
		Short: "Show or set the console language",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := helpers.AppFrom(cmd.Context())
			if err != nil {
				return err
			}
			if len(args) == 1 {
				if err := app.Prefs.SetLanguage(args[0]); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.Prefs.Language())
			return nil
		},
	}
}

// Execute runs the console.
func Execute() {
	if err := RootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
