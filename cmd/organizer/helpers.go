// Shared helpers for organizer CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/omidnw/room-organizer/internal/migrate"
	"github.com/omidnw/room-organizer/internal/store"
	"github.com/omidnw/room-organizer/pkg/types"
)

// openStore resolves the data directory and opens the inventory store. The
// caller must defer s.Close().
func openStore() (*store.Store, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		DataDir:  dataDir,
		Timezone: loadedConfig.Timezone,
		Currency: loadedConfig.Currency,
	}
	s, err := store.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return s, nil
}

// openMigratedStore opens the store and brings the schema to the latest
// version. Repository commands run through this so they never touch an
// inconsistent schema.
func openMigratedStore() (*store.Store, error) {
	s, err := openStore()
	if err != nil {
		return nil, err
	}

	runner, err := migrate.NewRunner(s, migrate.Registry())
	if err != nil {
		s.Close()
		return nil, err
	}
	if _, err := runner.Run(); err != nil {
		s.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return s, nil
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// fail prints the error and exits with the given code.
func fail(code int, context string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", context, err)
	os.Exit(code)
}
