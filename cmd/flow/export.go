package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/financeflow/flow/internal/cli"
	"github.com/financeflow/flow/internal/config"
	"github.com/financeflow/flow/internal/export"
	"github.com/financeflow/flow/internal/period"
)

func exportCmd() *cobra.Command {
	var (
		date string
		lang string
		dir  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download a month's PDF statement",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := initSession()
			if err != nil {
				return err
			}
			if err := requireAuth(sess); err != nil {
				return err
			}

			selector := period.NewSelector()
			if date != "" {
				if err := selector.SetExplicit(date); err != nil {
					return err
				}
			}

			if lang == "" {
				lang = sess.Language()
			}
			if dir == "" {
				dir = viper.GetString("export.dir")
				if dir == "" {
					dir = "."
				}
			}
			dir = config.ExpandPath(dir)

			path, err := export.Statement(cmd.Context(), initClient(sess), dir,
				selector.Year(), selector.Month(), lang)
			if err != nil {
				return fmt.Errorf("failed to export statement: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Statement saved to %s", path)))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any date in the month to export (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Statement language (default: saved preference)")
	cmd.Flags().StringVar(&dir, "dir", "", "Directory to save into (default: export.dir config, else current directory)")

	return cmd
}
