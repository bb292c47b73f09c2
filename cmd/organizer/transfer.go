// Export and import commands for the organizer CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omidnw/room-organizer/internal/store"
	"github.com/omidnw/room-organizer/pkg/types"
)

var importMerge bool

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the whole store to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openMigratedStore()
		if err != nil {
			fail(exitSysError, "export", err)
		}
		defer s.Close()

		doc, err := s.Export()
		if err != nil {
			fail(exitSysError, "export", err)
		}
		if err := store.WriteExportFile(args[0], doc); err != nil {
			fail(exitSysError, "export", err)
		}

		fmt.Printf("Exported %d categories, %d items to %s\n",
			len(doc.Data.Categories), len(doc.Data.Items), args[0])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a previously exported JSON file",
	Long: `Import an export document. By default the local stores are cleared and
replaced; with --merge only records whose IDs are not already present are
added, existing records are never overwritten.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openMigratedStore()
		if err != nil {
			fail(exitSysError, "import", err)
		}
		defer s.Close()

		doc, err := store.ReadExportFile(args[0])
		if err != nil {
			fail(exitUserError, "import", err)
		}
		if err := s.Import(doc, types.ImportOptions{Merge: importMerge}); err != nil {
			fail(exitUserError, "import", err)
		}

		fmt.Printf("Imported %s (document version %d)\n", args[0], doc.Version)
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&importMerge, "merge", false, "add non-colliding records instead of replacing")
}
