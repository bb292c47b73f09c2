// Settings commands for the organizer CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omidnw/room-organizer/internal/store"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Read and write store settings",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a setting value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openMigratedStore()
		if err != nil {
			fail(exitSysError, "settings get", err)
		}
		defer s.Close()

		value, err := store.NewSettings(s).Get(args[0])
		if err != nil {
			fail(exitUserError, "settings get", err)
		}
		fmt.Println(value)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a setting value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openMigratedStore()
		if err != nil {
			fail(exitSysError, "settings set", err)
		}
		defer s.Close()

		if err := store.NewSettings(s).Set(args[0], args[1]); err != nil {
			fail(exitUserError, "settings set", err)
		}
		fmt.Printf("Set %s = %s\n", args[0], args[1])
		return nil
	},
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openMigratedStore()
		if err != nil {
			fail(exitSysError, "settings list", err)
		}
		defer s.Close()

		entries, err := store.NewSettings(s).All()
		if err != nil {
			fail(exitSysError, "settings list", err)
		}

		if flagJSON {
			return printJSON(entries)
		}
		for _, entry := range entries {
			fmt.Printf("%s = %s\n", entry.Key, entry.Value)
		}
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsListCmd)
}
