package main

import (
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/itrgo/internal/repository/postgres"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL profile schema",
	}
	cmd.AddCommand(
		migrateRunCmd("up", "Apply all pending migrations", postgres.MigrateUp),
		migrateRunCmd("down", "Roll back all migrations", postgres.MigrateDown),
		migrateVersionCmd(),
	)
	return cmd
}

func withMigrator(cmd *cobra.Command, fn func(m *migrate.Migrate) error) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.sync()

	m, err := postgres.NewMigrator(a.settings.DB.DSN())
	if err != nil {
		return err
	}
	defer m.Close()

	return fn(m)
}

func migrateRunCmd(use, short string, run func(*migrate.Migrate) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(m *migrate.Migrate) error {
				if err := run(m); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Migrations %s complete\n", use)
				return nil
			})
		},
	}
}

func migrateVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(m *migrate.Migrate) error {
				v, dirty, err := postgres.Version(m)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", v, dirty)
				return nil
			})
		},
	}
}
