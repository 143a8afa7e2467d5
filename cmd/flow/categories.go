package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/financeflow/flow/internal/cli"
	"github.com/financeflow/flow/internal/store"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cat"},
		Short:   "Manage expense categories",
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(renameCategoryCmd())
	cmd.AddCommand(removeCategoryCmd())

	return cmd
}

func categoryStore() (*store.CategoryStore, error) {
	sess, err := initSession()
	if err != nil {
		return nil, err
	}
	if err := requireAuth(sess); err != nil {
		return nil, err
	}
	return store.NewCategoryStore(initClient(sess)), nil
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			categories, err := categoryStore()
			if err != nil {
				return err
			}

			if err := categories.RefetchAll(cmd.Context()); err != nil {
				return fmt.Errorf("failed to load categories: %w", err)
			}

			list := categories.Categories()
			if len(list) == 0 {
				fmt.Println(cli.FormatInfo("No categories yet. Use 'flow categories add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Name"))
			for _, c := range list {
				fmt.Fprintf(w, "%d\t%s\n", c.ID, c.Name)
			}

			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := categoryStore()
			if err != nil {
				return err
			}

			if err := categories.Create(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created category %q", args[0])))
			return nil
		},
	}
}

func renameCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid category id: %w", err)
			}

			categories, err := categoryStore()
			if err != nil {
				return err
			}

			if err := categories.Rename(cmd.Context(), id, args[1]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Renamed category %d to %q", id, args[1])))
			return nil
		},
	}
}

func removeCategoryCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a category",
		Long: `Delete a category. Transactions that used it are kept and
become uncategorized.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid category id: %w", err)
			}

			categories, err := categoryStore()
			if err != nil {
				return err
			}

			if !force {
				ok, err := cli.Confirm(os.Stdin, os.Stdout,
					fmt.Sprintf("Delete category %d? Its transactions become uncategorized.", id))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Deletion cancelled.")
					return nil
				}
			}

			if err := categories.Remove(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted category %d", id)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}
