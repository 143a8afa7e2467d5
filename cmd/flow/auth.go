package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/financeflow/flow/internal/cli"
)

func loginCmd() *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session credential",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := initSession()
			if err != nil {
				return err
			}

			if username == "" {
				username, err = promptLine("Username")
				if err != nil {
					return err
				}
			}
			if password == "" {
				password, err = promptLine("Password")
				if err != nil {
					return err
				}
			}

			client := initClient(sess)
			if err := client.Login(cmd.Context(), username, password); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Logged in as %s", username)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (prompted if omitted)")

	return cmd
}

func registerCmd() *cobra.Command {
	var (
		username string
		password string
		email    string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account and log in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := initSession()
			if err != nil {
				return err
			}

			if username == "" {
				username, err = promptLine("Username")
				if err != nil {
					return err
				}
			}
			if password == "" {
				password, err = promptLine("Password")
				if err != nil {
					return err
				}
			}

			client := initClient(sess)
			if err := client.Register(cmd.Context(), username, password, email); err != nil {
				return err
			}

			// Registration succeeded; obtain a credential right away.
			if err := client.Login(cmd.Context(), username, password); err != nil {
				return fmt.Errorf("account created but login failed: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Account %s created and logged in", username)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (prompted if omitted)")
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email (optional)")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored credential",
		RunE: func(_ *cobra.Command, _ []string) error {
			sess, err := initSession()
			if err != nil {
				return err
			}

			if !sess.Authenticated() {
				fmt.Println(cli.FormatInfo("Already logged out."))
				return nil
			}

			if err := sess.Clear(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Logged out."))
			return nil
		},
	}
}

func promptLine(label string) (string, error) {
	fmt.Printf("%s: ", label)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}
