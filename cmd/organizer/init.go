// Init command: create the store, run migrations, seed settings defaults.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omidnw/room-organizer/internal/store"
	"github.com/omidnw/room-organizer/pkg/types"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the inventory store",
	Long:  `Create the local database, bring the schema to the latest version, and seed the default settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openMigratedStore()
		if err != nil {
			fail(exitSysError, "init", err)
		}
		defer s.Close()

		settings := store.NewSettings(s)
		for key, value := range map[string]string{
			types.SettingTimezone: s.Config().TimezoneOrDefault(),
			types.SettingCurrency: s.Config().CurrencyOrDefault(),
		} {
			if _, err := settings.Get(key); errors.Is(err, types.ErrNotFound) {
				if err := settings.Set(key, value); err != nil {
					fail(exitSysError, "seed settings", err)
				}
			}
		}

		fmt.Println("Inventory store initialized")
		return nil
	},
}
