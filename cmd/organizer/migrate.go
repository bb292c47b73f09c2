// Migrate command for the organizer CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omidnw/room-organizer/internal/migrate"
)

var migrateRollbackTo int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations (or roll back with --rollback-to)",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			fail(exitSysError, "migrate", err)
		}
		defer s.Close()

		runner, err := migrate.NewRunner(s, migrate.Registry())
		if err != nil {
			fail(exitSysError, "migrate", err)
		}

		if cmd.Flags().Changed("rollback-to") {
			if err := runner.Rollback(migrateRollbackTo); err != nil {
				fail(exitSysError, "rollback", err)
			}
			current, err := runner.CurrentVersion()
			if err != nil {
				fail(exitSysError, "rollback", err)
			}
			fmt.Printf("Schema rolled back to version %d\n", current)
			return nil
		}

		applied, err := runner.Run()
		if err != nil {
			fail(exitSysError, "migrate", err)
		}
		current, err := runner.CurrentVersion()
		if err != nil {
			fail(exitSysError, "migrate", err)
		}
		fmt.Printf("Applied %d migrations, schema at version %d\n", applied, current)
		return nil
	},
}

func init() {
	migrateCmd.Flags().IntVar(&migrateRollbackTo, "rollback-to", 0, "roll the schema back to this version")
}
