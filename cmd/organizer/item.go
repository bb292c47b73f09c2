// Item commands for the organizer CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omidnw/room-organizer/internal/store"
	"github.com/omidnw/room-organizer/pkg/types"
)

var (
	itemAddName         string
	itemAddCategory     string
	itemAddQuantity     int
	itemAddPrice        float64
	itemAddPurchaseDate string
	itemAddDescription  string
	itemAddNotes        string

	itemListCategory string
	itemListPage     int
	itemListLimit    int
	itemListSubtree  bool

	itemSearchCategory string
	itemRecentLimit    int
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Manage inventory items",
}

var itemAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an item in a category",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openMigratedStore()
		if err != nil {
			fail(exitSysError, "item add", err)
		}
		defer s.Close()

		categories := store.NewCategories(s)
		item, err := store.NewItems(s, categories).Create(types.ItemForm{
			Name:         itemAddName,
			CategoryID:   itemAddCategory,
			Quantity:     itemAddQuantity,
			Price:        itemAddPrice,
			PurchaseDate: itemAddPurchaseDate,
			Description:  itemAddDescription,
			Notes:        itemAddNotes,
		})
		if err != nil {
			fail(exitUserError, "item add", err)
		}

		if flagJSON {
			return printJSON(item)
		}
		fmt.Printf("Created item %s (%s)\n", item.Name, item.ID)
		return nil
	},
}

var itemListCmd = &cobra.Command{
	Use:   "list",
	Short: "List items, optionally scoped to a category subtree",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openMigratedStore()
		if err != nil {
			fail(exitSysError, "item list", err)
		}
		defer s.Close()

		categories := store.NewCategories(s)
		items := store.NewItems(s, categories)
		opts := store.ListOptions{
			Page:                 itemListPage,
			Limit:                itemListLimit,
			IncludeSubcategories: itemListSubtree,
		}

		var results []types.Item
		if itemListCategory != "" {
			results, err = items.GetByCategory(itemListCategory, opts)
		} else {
			results, err = items.GetAll(opts)
		}
		if err != nil {
			fail(exitSysError, "item list", err)
		}

		if flagJSON {
			return printJSON(results)
		}
		for _, item := range results {
			fmt.Printf("%s x%d @ %.2f (%s)\n", item.Name, item.Quantity, item.Price, item.ID)
		}
		return nil
	},
}

var itemSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search items by name or description (and notes within a category)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openMigratedStore()
		if err != nil {
			fail(exitSysError, "item search", err)
		}
		defer s.Close()

		categories := store.NewCategories(s)
		items := store.NewItems(s, categories)

		var results []types.Item
		if itemSearchCategory != "" {
			results, err = items.SearchInCategory(itemSearchCategory, args[0], store.ListOptions{})
		} else {
			results, err = items.Search(args[0])
		}
		if err != nil {
			fail(exitSysError, "item search", err)
		}

		if flagJSON {
			return printJSON(results)
		}
		for _, item := range results {
			fmt.Printf("%s (%s)\n", item.Name, item.ID)
		}
		return nil
	},
}

var itemRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List the most recently updated items",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openMigratedStore()
		if err != nil {
			fail(exitSysError, "item recent", err)
		}
		defer s.Close()

		categories := store.NewCategories(s)
		results, err := store.NewItems(s, categories).GetRecent(itemRecentLimit)
		if err != nil {
			fail(exitUserError, "item recent", err)
		}

		if flagJSON {
			return printJSON(results)
		}
		for _, item := range results {
			fmt.Printf("%s (updated %s)\n", item.Name, item.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var itemDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openMigratedStore()
		if err != nil {
			fail(exitSysError, "item delete", err)
		}
		defer s.Close()

		categories := store.NewCategories(s)
		if err := store.NewItems(s, categories).Delete(args[0]); err != nil {
			fail(exitUserError, "item delete", err)
		}
		fmt.Println("Deleted item", args[0])
		return nil
	},
}

func init() {
	itemAddCmd.Flags().StringVar(&itemAddName, "name", "", "item name (required)")
	itemAddCmd.Flags().StringVar(&itemAddCategory, "category", "", "category ID (required)")
	itemAddCmd.Flags().IntVar(&itemAddQuantity, "quantity", 1, "quantity (>= 0)")
	itemAddCmd.Flags().Float64Var(&itemAddPrice, "price", 0, "unit price (>= 0)")
	itemAddCmd.Flags().StringVar(&itemAddPurchaseDate, "purchase-date", "", "purchase date, ISO format (required)")
	itemAddCmd.Flags().StringVar(&itemAddDescription, "description", "", "item description")
	itemAddCmd.Flags().StringVar(&itemAddNotes, "notes", "", "free-form notes")

	itemListCmd.Flags().StringVar(&itemListCategory, "category", "", "category ID to list")
	itemListCmd.Flags().IntVar(&itemListPage, "page", 0, "page number (1-based)")
	itemListCmd.Flags().IntVar(&itemListLimit, "limit", 0, "page size")
	itemListCmd.Flags().BoolVar(&itemListSubtree, "subtree", false, "include items from all subcategories")

	itemSearchCmd.Flags().StringVar(&itemSearchCategory, "category", "", "scope to one category (adds notes to the searched fields)")
	itemRecentCmd.Flags().IntVar(&itemRecentLimit, "limit", 5, "number of items")

	itemCmd.AddCommand(itemAddCmd)
	itemCmd.AddCommand(itemListCmd)
	itemCmd.AddCommand(itemSearchCmd)
	itemCmd.AddCommand(itemRecentCmd)
	itemCmd.AddCommand(itemDeleteCmd)
}
