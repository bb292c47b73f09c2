// Category commands for the organizer CLI.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/omidnw/room-organizer/internal/store"
	"github.com/omidnw/room-organizer/pkg/types"
)

var (
	categoryAddName        string
	categoryAddDescription string
	categoryAddColor       string
	categoryAddParent      string
	categoryAddFolder      bool

	categorySearchParent string
	categoryMoveParent   string
	categoryDeleteForce  bool
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage the category tree",
}

var categoryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a category",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openMigratedStore()
		if err != nil {
			fail(exitSysError, "category add", err)
		}
		defer s.Close()

		form := types.CategoryForm{
			Name:        categoryAddName,
			Description: categoryAddDescription,
			Color:       categoryAddColor,
			IsFolder:    categoryAddFolder,
		}
		if categoryAddParent != "" {
			form.ParentID = &categoryAddParent
		}

		cat, err := store.NewCategories(s).Create(form)
		if err != nil {
			fail(exitUserError, "category add", err)
		}

		if flagJSON {
			return printJSON(cat)
		}
		fmt.Printf("Created category %s (%s)\n", cat.Name, cat.ID)
		return nil
	},
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all categories sorted by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openMigratedStore()
		if err != nil {
			fail(exitSysError, "category list", err)
		}
		defer s.Close()

		cats, err := store.NewCategories(s).GetAll()
		if err != nil {
			fail(exitSysError, "category list", err)
		}

		if flagJSON {
			return printJSON(cats)
		}
		for _, cat := range cats {
			fmt.Printf("%s%s (%s)\n", strings.Repeat("  ", cat.Level), cat.Name, cat.ID)
		}
		return nil
	},
}

var categoryTreeCmd = &cobra.Command{
	Use:   "tree [id]",
	Short: "Print a category subtree (or the whole tree)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openMigratedStore()
		if err != nil {
			fail(exitSysError, "category tree", err)
		}
		defer s.Close()

		categories := store.NewCategories(s)
		var cats []types.Category
		if len(args) == 1 {
			root, err := categories.GetByID(args[0])
			if err != nil {
				fail(exitUserError, "category tree", err)
			}
			descendants, err := categories.GetDescendants(args[0])
			if err != nil {
				fail(exitSysError, "category tree", err)
			}
			cats = append([]types.Category{*root}, descendants...)
		} else {
			if cats, err = categories.GetAll(); err != nil {
				fail(exitSysError, "category tree", err)
			}
		}

		if flagJSON {
			return printJSON(cats)
		}
		printTree(cats)
		return nil
	},
}

var categorySearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search categories by name or description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openMigratedStore()
		if err != nil {
			fail(exitSysError, "category search", err)
		}
		defer s.Close()

		var parentID *string
		if categorySearchParent != "" {
			parentID = &categorySearchParent
		}
		cats, err := store.NewCategories(s).Search(args[0], parentID)
		if err != nil {
			fail(exitSysError, "category search", err)
		}

		if flagJSON {
			return printJSON(cats)
		}
		for _, cat := range cats {
			fmt.Printf("%s (%s)\n", cat.Name, cat.ID)
		}
		return nil
	},
}

var categoryPathCmd = &cobra.Command{
	Use:   "path <id>",
	Short: "Print the breadcrumb path of a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openMigratedStore()
		if err != nil {
			fail(exitSysError, "category path", err)
		}
		defer s.Close()

		categories := store.NewCategories(s)
		ancestors, err := categories.GetPath(args[0])
		if err != nil {
			fail(exitUserError, "category path", err)
		}
		cat, err := categories.GetByID(args[0])
		if err != nil {
			fail(exitUserError, "category path", err)
		}

		if flagJSON {
			return printJSON(append(ancestors, *cat))
		}
		names := make([]string, 0, len(ancestors)+1)
		for _, a := range ancestors {
			names = append(names, a.Name)
		}
		names = append(names, cat.Name)
		fmt.Println(strings.Join(names, " > "))
		return nil
	},
}

var categoryMoveCmd = &cobra.Command{
	Use:   "move <id>",
	Short: "Reparent a category, recomputing its subtree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openMigratedStore()
		if err != nil {
			fail(exitSysError, "category move", err)
		}
		defer s.Close()

		var parentID *string
		if categoryMoveParent != "" {
			parentID = &categoryMoveParent
		}
		cat, err := store.NewCategories(s).Move(args[0], parentID)
		if err != nil {
			fail(exitUserError, "category move", err)
		}

		if flagJSON {
			return printJSON(cat)
		}
		fmt.Printf("Moved category %s to level %d\n", cat.Name, cat.Level)
		return nil
	},
}

var categoryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a category (children and items are orphaned, not deleted)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openMigratedStore()
		if err != nil {
			fail(exitSysError, "category delete", err)
		}
		defer s.Close()

		categories := store.NewCategories(s)
		items := store.NewItems(s, categories)
		id := args[0]

		// The core never cascades; the warning policy lives here.
		children, err := categories.GetChildren(&id)
		if err != nil {
			fail(exitSysError, "category delete", err)
		}
		count, err := items.CountByCategory(id)
		if err != nil {
			fail(exitSysError, "category delete", err)
		}
		if (len(children) > 0 || count > 0) && !categoryDeleteForce {
			fmt.Fprintf(os.Stderr,
				"category has %d subcategories and %d items; they will be orphaned. Re-run with --force.\n",
				len(children), count)
			os.Exit(exitUserError)
		}

		if err := categories.Delete(id); err != nil {
			fail(exitUserError, "category delete", err)
		}
		fmt.Println("Deleted category", id)
		return nil
	},
}

// printTree prints categories indented by level, children under parents.
func printTree(cats []types.Category) {
	byParent := map[string][]types.Category{}
	roots := []types.Category{}
	inSet := map[string]bool{}
	for _, cat := range cats {
		inSet[cat.ID] = true
	}
	for _, cat := range cats {
		if cat.ParentID != nil && inSet[*cat.ParentID] {
			byParent[*cat.ParentID] = append(byParent[*cat.ParentID], cat)
		} else {
			roots = append(roots, cat)
		}
	}

	var walk func(cat types.Category, depth int)
	walk = func(cat types.Category, depth int) {
		marker := ""
		if cat.IsFolder {
			marker = "/"
		}
		fmt.Printf("%s%s%s (%s)\n", strings.Repeat("  ", depth), cat.Name, marker, cat.ID)
		for _, child := range byParent[cat.ID] {
			walk(child, depth+1)
		}
	}
	for _, root := range roots {
		walk(root, 0)
	}
}

func init() {
	categoryAddCmd.Flags().StringVar(&categoryAddName, "name", "", "category name (required)")
	categoryAddCmd.Flags().StringVar(&categoryAddDescription, "description", "", "category description")
	categoryAddCmd.Flags().StringVar(&categoryAddColor, "color", "#3B82F6", "display color")
	categoryAddCmd.Flags().StringVar(&categoryAddParent, "parent", "", "parent category ID")
	categoryAddCmd.Flags().BoolVar(&categoryAddFolder, "folder", false, "folder category (organizes subcategories)")

	categorySearchCmd.Flags().StringVar(&categorySearchParent, "parent", "", "scope to direct children of this parent ID")
	categoryMoveCmd.Flags().StringVar(&categoryMoveParent, "parent", "", "new parent category ID (empty moves to root)")
	categoryDeleteCmd.Flags().BoolVar(&categoryDeleteForce, "force", false, "delete even when subcategories or items remain")

	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryTreeCmd)
	categoryCmd.AddCommand(categorySearchCmd)
	categoryCmd.AddCommand(categoryPathCmd)
	categoryCmd.AddCommand(categoryMoveCmd)
	categoryCmd.AddCommand(categoryDeleteCmd)
}
