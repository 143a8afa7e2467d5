package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/financeflow/flow/internal/cli"
	"github.com/financeflow/flow/internal/session"
)

func languageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "language [code]",
		Short: "Show or set the statement language",
		Long: `Show the saved language preference, or set it by passing a code
such as "en" or "it". The preference is used by 'flow export' when
--lang is not given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			sess, err := initSession()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				fmt.Printf("Statement language: %s\n", sess.Language())
				return nil
			}

			lang := args[0]
			if !session.SupportedLanguage(lang) {
				return fmt.Errorf("unsupported language %q (supported: %v)", lang, session.SupportedLanguages())
			}

			if err := sess.SetLanguage(lang); err != nil {
				return fmt.Errorf("failed to save language: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Statement language set to %s", lang)))
			return nil
		},
	}
}
