// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"flag"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/MKhiriev/capability-assessment/internal/app"
	"github.com/MKhiriev/capability-assessment/internal/config"
	"github.com/MKhiriev/capability-assessment/internal/logger"
	"github.com/MKhiriev/capability-assessment/models"
)

// bindConfigFlags exposes the configuration flags on a cobra flag set.
func bindConfigFlags(flags *pflag.FlagSet) *config.Flags {
	fs := flag.NewFlagSet("capassess", flag.ContinueOnError)
	configFlags := config.RegisterFlags(fs)
	flags.AddGoFlagSet(fs)
	return configFlags
}

func newRootCommand(buildInfo models.AppBuildInfo, log *logger.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "capassess",
		Short:         "Capability self-assessment web application",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	configFlags := bindConfigFlags(root.PersistentFlags())

	loadConfig := func() (*config.StructuredConfig, error) {
		cfg, err := config.GetStructuredConfig(configFlags)
		if err != nil {
			return nil, fmt.Errorf("error getting configs: %w", err)
		}
		if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	serve := newServeCommand(buildInfo, log, loadConfig)
	root.RunE = serve.RunE

	root.AddCommand(
		serve,
		newMigrateCommand(log, loadConfig),
		newAdminCommand(buildInfo, log, loadConfig),
		newVersionCommand(buildInfo),
	)
	return root
}

type configLoader func() (*config.StructuredConfig, error)

func newServeCommand(buildInfo models.AppBuildInfo, log *logger.Logger, loadConfig configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log.Info().Str("build", buildInfo.String()).Str("address", cfg.Server.HTTPAddress).Msg("starting")

			a, err := app.NewApp(cmd.Context(), cfg, buildInfo, log)
			if err != nil {
				return err
			}
			defer a.Close()

			return a.Run(cmd.Context())
		},
	}
}

func newMigrateCommand(log *logger.Logger, loadConfig configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database if needed and apply pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			version, err := app.Migrate(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version: %d\n", version)
			return nil
		},
	}
}

func newAdminCommand(buildInfo models.AppBuildInfo, log *logger.Logger, loadConfig configLoader) *cobra.Command {
	admin := &cobra.Command{
		Use:   "admin",
		Short: "Manage administrator rights",
	}

	setAdmin := func(isAdmin bool) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			a, err := app.NewApp(cmd.Context(), cfg, buildInfo, log)
			if err != nil {
				return err
			}
			defer a.Close()

			if err = a.SetAdmin(cmd.Context(), args[0], isAdmin); err != nil {
				return err
			}

			verb := "revoked from"
			if isAdmin {
				verb = "granted to"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "administrator rights %s %s\n", verb, args[0])
			return nil
		}
	}

	admin.AddCommand(
		&cobra.Command{
			Use:   "grant <username>",
			Short: "Make an existing user an administrator",
			Args:  cobra.ExactArgs(1),
			RunE:  setAdmin(true),
		},
		&cobra.Command{
			Use:   "revoke <username>",
			Short: "Remove administrator rights from a user",
			Args:  cobra.ExactArgs(1),
			RunE:  setAdmin(false),
		},
	)
	return admin
}

func newVersionCommand(buildInfo models.AppBuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildInfo.String())
		},
	}
}
