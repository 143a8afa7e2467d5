package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/financeflow/flow/internal/aggregate"
	"github.com/financeflow/flow/internal/cli"
	"github.com/financeflow/flow/internal/form"
	"github.com/financeflow/flow/internal/model"
	"github.com/financeflow/flow/internal/period"
	"github.com/financeflow/flow/internal/store"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Record and browse transactions",
		Long:  `List, add, edit, and delete the transactions of a calendar month.`,
	}

	cmd.AddCommand(listTxCmd())
	cmd.AddCommand(addTxCmd())
	cmd.AddCommand(editTxCmd())
	cmd.AddCommand(removeTxCmd())

	return cmd
}

// txStores wires up the per-command selector and stores.
func txStores(date string) (*period.Selector, *store.TransactionStore, *store.CategoryStore, error) {
	sess, err := initSession()
	if err != nil {
		return nil, nil, nil, err
	}
	if err := requireAuth(sess); err != nil {
		return nil, nil, nil, err
	}

	client := initClient(sess)
	selector := period.NewSelector()
	if date != "" {
		if err := selector.SetExplicit(date); err != nil {
			return nil, nil, nil, err
		}
	}

	return selector, store.NewTransactionStore(client, selector, sess), store.NewCategoryStore(client), nil
}

func listTxCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a month's transactions with totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			selector, transactions, _, err := txStores(date)
			if err != nil {
				return err
			}

			if err := transactions.Refetch(cmd.Context()); err != nil {
				return fmt.Errorf("failed to load transactions: %w", err)
			}

			list := transactions.Transactions()
			summary := aggregate.Summarize(list)

			fmt.Println(cli.FormatTitle(selector.Current().Format("January 2006")))
			fmt.Printf("%s %s   %s %s   %s %s\n\n",
				cli.SubtleStyle.Render("income"), cli.IncomeStyle.Render(summary.Income.StringFixed(2)),
				cli.SubtleStyle.Render("expense"), cli.ExpenseStyle.Render(summary.Expense.StringFixed(2)),
				cli.SubtleStyle.Render("balance"), summary.Balance.StringFixed(2))

			if len(list) == 0 {
				fmt.Println(cli.FormatInfo("No transactions this month. Use 'flow tx add' to record one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Date"),
				cli.TableHeaderStyle.Render("Description"),
				cli.TableHeaderStyle.Render("Category"),
				cli.TableHeaderStyle.Render("Amount"))

			for _, t := range list {
				category := t.CategoryName
				if category == "" {
					category = cli.SubtleStyle.Render("(uncategorized)")
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					t.ID, t.Date, t.Description, category,
					cli.FormatAmount(t.DecimalAmount().StringFixed(2), t.Type == model.TypeIncome))
			}

			if groups := aggregate.ExpensesByCategory(list); len(groups) > 0 {
				w.Flush()
				fmt.Println("\n" + cli.SubtleStyle.Render("Expenses by category"))
				for _, g := range groups {
					name := g.Name
					if name == "" {
						name = "(uncategorized)"
					}
					fmt.Printf("  %-20s %s\n", name, cli.ExpenseStyle.Render(g.Amount.StringFixed(2)))
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any date in the month to list (YYYY-MM-DD, default today)")

	return cmd
}

func addTxCmd() *cobra.Command {
	var (
		description string
		amount      string
		date        string
		category    int
		txType      string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, transactions, categories, err := txStores(date)
			if err != nil {
				return err
			}

			// Load categories so the draft can adopt a default one.
			if err := categories.RefetchAll(cmd.Context()); err != nil {
				return fmt.Errorf("failed to load categories: %w", err)
			}

			controller := form.NewController(categories)
			draft := controller.Draft()
			draft.Description = description
			draft.Amount = amount
			if date != "" {
				draft.Date = date
			}
			if category != 0 {
				draft.Category = category
			}
			if txType != "" {
				draft.Type = model.TransactionType(strings.ToUpper(txType))
			}
			controller.SetDraft(draft)
			controller.ApplyDefaultCategory()

			if err := controller.Submit(cmd.Context(), transactions); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %q (%s)", description, amount)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "What the money was for")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount, e.g. 12.50")
	cmd.Flags().StringVar(&date, "date", "", "Transaction date (YYYY-MM-DD, default today)")
	cmd.Flags().IntVarP(&category, "category", "c", 0, "Category id (default: first category)")
	cmd.Flags().StringVarP(&txType, "type", "t", "", "IN for income, OUT for expense (default OUT)")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func editTxCmd() *cobra.Command {
	var (
		description string
		amount      string
		date        string
		category    int
		txType      string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace a transaction's fields",
		Long:  `Submit a full replacement of the named transaction. All fields are sent; the named record keeps its id.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid transaction id: %w", err)
			}

			_, transactions, _, err := txStores(date)
			if err != nil {
				return err
			}

			draft := model.Draft{
				Description: description,
				Amount:      amount,
				Date:        date,
				Category:    category,
				Type:        model.TransactionType(strings.ToUpper(txType)),
			}
			if err := transactions.Update(cmd.Context(), id, draft); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated transaction %d", id)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "What the money was for")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount, e.g. 12.50")
	cmd.Flags().StringVar(&date, "date", "", "Transaction date (YYYY-MM-DD)")
	cmd.Flags().IntVarP(&category, "category", "c", 0, "Category id")
	cmd.Flags().StringVarP(&txType, "type", "t", "OUT", "IN for income, OUT for expense")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func removeTxCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid transaction id: %w", err)
			}

			_, transactions, _, err := txStores("")
			if err != nil {
				return err
			}

			if !force {
				ok, err := cli.Confirm(os.Stdin, os.Stdout, fmt.Sprintf("Delete transaction %d?", id))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Deletion cancelled.")
					return nil
				}
			}

			if err := transactions.Remove(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted transaction %d", id)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}
