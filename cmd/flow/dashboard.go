package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/financeflow/flow/internal/api"
	"github.com/financeflow/flow/internal/period"
	"github.com/financeflow/flow/internal/store"
	"github.com/financeflow/flow/internal/tui"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash"},
		Short:   "Open the interactive dashboard",
		Long: `Open a full-screen dashboard with the current month's transactions,
summary cards, and an expense breakdown. Navigate months with h/l,
record transactions with n, and edit or delete the selection.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			sess, err := initSession()
			if err != nil {
				return err
			}
			if err := requireAuth(sess); err != nil {
				return err
			}

			// The dashboard installs its own unauthorized hook, so the
			// client is built directly rather than through initClient.
			client := api.NewClient(viper.GetString("api.base_url"), sess)
			selector := period.NewSelector()
			transactions := store.NewTransactionStore(client, selector, sess)
			categories := store.NewCategoryStore(client)

			return tui.Run(sess, client, selector, transactions, categories)
		},
	}
}
