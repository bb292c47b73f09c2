// Reset command: destroy the persisted database entirely.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/omidnw/room-organizer/pkg/types"
)

var resetConfirm bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the entire local database",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetConfirm {
			fmt.Fprintln(os.Stderr, "reset deletes all data; re-run with --yes to confirm")
			os.Exit(exitUserError)
		}

		s, err := openStore()
		if err != nil {
			fail(exitSysError, "reset", err)
		}
		defer s.Close()

		if err := s.Reset(); err != nil {
			if errors.Is(err, types.ErrStorageBlocked) {
				fmt.Fprintln(os.Stderr, "reset: database is in use by another session; close it and retry")
				os.Exit(exitUserError)
			}
			fail(exitSysError, "reset", err)
		}

		fmt.Println("Database deleted")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetConfirm, "yes", false, "confirm deletion")
}
